//go:build linux

package platform

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"multitimer/internal/core/hotkey"
)

const evKey = 0x01

// inputEventSize is sizeof(struct input_event) on 64-bit Linux:
// two 8-byte timeval fields, type, code, value.
const inputEventSize = 24

type keySource struct {
	mu      sync.Mutex
	events  chan hotkey.KeyEvent
	devices []*os.File
	running bool
}

func newKeySource() hotkey.KeySource {
	return &keySource{events: make(chan hotkey.KeyEvent, 64)}
}

func (source *keySource) Start() error {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.running {
		return nil
	}

	paths, _ := filepath.Glob("/dev/input/event*")
	for _, path := range paths {
		device, err := os.Open(path)
		if err != nil {
			continue
		}
		source.devices = append(source.devices, device)
	}
	if len(source.devices) == 0 {
		return hotkey.ErrCaptureUnsupported
	}

	source.running = true
	for _, device := range source.devices {
		go source.read(device)
	}
	return nil
}

func (source *keySource) Events() <-chan hotkey.KeyEvent {
	return source.events
}

func (source *keySource) Stop() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return
	}
	source.running = false
	for _, device := range source.devices {
		_ = device.Close()
	}
	source.devices = nil
}

func (source *keySource) read(device *os.File) {
	buffer := make([]byte, inputEventSize)
	for {
		if _, err := device.Read(buffer); err != nil {
			return
		}

		eventType := binary.LittleEndian.Uint16(buffer[16:18])
		if eventType != evKey {
			continue
		}
		value := binary.LittleEndian.Uint32(buffer[20:24])
		if value > 1 {
			// Auto-repeat; the pressed set already contains the key.
			continue
		}
		kernelCode := binary.LittleEndian.Uint16(buffer[18:20])
		code, ok := kernelKeyCodes[kernelCode]
		if !ok {
			continue
		}

		select {
		case source.events <- hotkey.KeyEvent{Code: code, Pressed: value == 1}:
		default:
		}
	}
}

// kernelKeyCodes translates Linux input keycodes into the hotkey code
// space. Only keys the normalizer understands are listed.
var kernelKeyCodes = map[uint16]hotkey.Code{
	1:  hotkey.CodeEscape,
	2:  0x31, 3: 0x32, 4: 0x33, 5: 0x34, 6: 0x35,
	7:  0x36, 8: 0x37, 9: 0x38, 10: 0x39, 11: 0x30,
	14: 0x08, // backspace
	15: 0x09, // tab
	16: 0x51, 17: 0x57, 18: 0x45, 19: 0x52, 20: 0x54,
	21: 0x59, 22: 0x55, 23: 0x49, 24: 0x4F, 25: 0x50,
	28: 0x0D, // enter
	29: hotkey.CodeLeftCtrl,
	30: 0x41, 31: 0x53, 32: 0x44, 33: 0x46, 34: 0x47,
	35: 0x48, 36: 0x4A, 37: 0x4B, 38: 0x4C,
	42: hotkey.CodeLeftShift,
	44: 0x5A, 45: 0x58, 46: 0x43, 47: 0x56, 48: 0x42,
	49: 0x4E, 50: 0x4D,
	54: hotkey.CodeRightShift,
	55: 0x6A, // keypad *
	56: hotkey.CodeLeftAlt,
	57: 0x20, // space
	59: 0x70, 60: 0x71, 61: 0x72, 62: 0x73, 63: 0x74,
	64: 0x75, 65: 0x76, 66: 0x77, 67: 0x78, 68: 0x79,
	69: 0x90, // num lock
	70: 0x91, // scroll lock
	71: 0x67, 72: 0x68, 73: 0x69, // keypad 7 8 9
	74: 0x6D, // keypad -
	75: 0x64, 76: 0x65, 77: 0x66, // keypad 4 5 6
	78: 0x6B, // keypad +
	79: 0x61, 80: 0x62, 81: 0x63, // keypad 1 2 3
	82: 0x60, // keypad 0
	83: 0x6E, // keypad .
	87: 0x7A, 88: 0x7B, // f11 f12
	97: hotkey.CodeRightCtrl,
	98: 0x6F, // keypad /
	99: 0x2C, // print screen
	100: hotkey.CodeRightAlt,
	102: 0x24, // home
	103: 0x26, // up
	104: 0x21, // page up
	105: 0x25, // left
	106: 0x27, // right
	107: 0x23, // end
	108: 0x28, // down
	109: 0x22, // page down
	110: 0x2D, // insert
	111: 0x2E, // delete
	119: 0x13, // pause
	125: hotkey.CodeLeftWin,
	126: hotkey.CodeRightWin,
	183: 0x7C, 184: 0x7D, 185: 0x7E, 186: 0x7F,
	187: 0x80, 188: 0x81, 189: 0x82, 190: 0x83,
	191: 0x84, 192: 0x85, 193: 0x86, 194: 0x87, // f13-f24
}
