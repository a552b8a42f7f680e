package hotkey

// Code identifies a physical key. Values follow the Windows virtual-key
// numbering; platform listeners translate their native identifiers into
// this space before delivering events.
type Code uint16

// KeyEvent is a raw physical key transition from the OS listener.
type KeyEvent struct {
	Code    Code
	Pressed bool
}

// KeySource delivers raw key events regardless of application focus.
type KeySource interface {
	Start() error
	Events() <-chan KeyEvent
	Stop()
}

// Modifier and control codes.
const (
	CodeEscape Code = 0x1B

	CodeShift      Code = 0x10
	CodeCtrl       Code = 0x11
	CodeAlt        Code = 0x12
	CodeLeftWin    Code = 0x5B
	CodeRightWin   Code = 0x5C
	CodeLeftShift  Code = 0xA0
	CodeRightShift Code = 0xA1
	CodeLeftCtrl   Code = 0xA2
	CodeRightCtrl  Code = 0xA3
	CodeLeftAlt    Code = 0xA4
	CodeRightAlt   Code = 0xA5
)

// modifierTokens folds left/right variants into one canonical token.
var modifierTokens = map[Code]string{
	CodeCtrl:       "ctrl",
	CodeLeftCtrl:   "ctrl",
	CodeRightCtrl:  "ctrl",
	CodeShift:      "shift",
	CodeLeftShift:  "shift",
	CodeRightShift: "shift",
	CodeAlt:        "alt",
	CodeLeftAlt:    "alt",
	CodeRightAlt:   "alt",
	CodeLeftWin:    "win",
	CodeRightWin:   "win",
}

// modifierOrder fixes the canonical prefix order.
var modifierOrder = []string{"ctrl", "shift", "alt", "win"}

// keyTokens maps physical key codes to canonical tokens. Shifted symbols
// never appear here: Shift+1 resolves through code 0x31 to "1", not "!".
var keyTokens = map[Code]string{}

func init() {
	// Number row 0-9.
	for code := Code(0x30); code <= 0x39; code++ {
		keyTokens[code] = string(rune('0' + code - 0x30))
	}
	// Letters a-z.
	for code := Code(0x41); code <= 0x5A; code++ {
		keyTokens[code] = string(rune('a' + code - 0x41))
	}
	// Function keys f1-f24.
	for index := 0; index < 24; index++ {
		keyTokens[Code(0x70+index)] = "f" + itoa(index+1)
	}
	// Numpad digits.
	for index := 0; index < 10; index++ {
		keyTokens[Code(0x60+index)] = "num" + itoa(index)
	}

	named := map[Code]string{
		0x08: "backspace",
		0x09: "tab",
		0x0D: "enter",
		0x13: "pause",
		0x20: "space",
		0x21: "page_up",
		0x22: "page_down",
		0x23: "end",
		0x24: "home",
		0x25: "left",
		0x26: "up",
		0x27: "right",
		0x28: "down",
		0x2C: "print_screen",
		0x2D: "insert",
		0x2E: "delete",
		0x6A: "num_multiply",
		0x6B: "num_add",
		0x6D: "num_subtract",
		0x6E: "num_decimal",
		0x6F: "num_divide",
		0x90: "num_lock",
		0x91: "scroll_lock",
	}
	for code, token := range named {
		keyTokens[code] = token
	}
}

func itoa(value int) string {
	if value >= 10 {
		return string(rune('0'+value/10)) + string(rune('0'+value%10))
	}
	return string(rune('0' + value))
}

// IsModifier reports whether code is a modifier key.
func IsModifier(code Code) bool {
	_, ok := modifierTokens[code]
	return ok
}

// TrackedCodes lists every code the platform listeners should observe:
// all mapped regular keys, the modifier variants and Escape.
func TrackedCodes() []Code {
	codes := make([]Code, 0, len(keyTokens)+len(modifierTokens)+1)
	for code := range keyTokens {
		codes = append(codes, code)
	}
	for code := range modifierTokens {
		codes = append(codes, code)
	}
	return append(codes, CodeEscape)
}
