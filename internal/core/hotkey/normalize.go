package hotkey

import (
	"sort"
	"strings"

	"multitimer/internal/core/validate"
)

// Normalize converts a set of simultaneously held key codes into the
// canonical hotkey string: lower-cased tokens joined by "+", modifiers
// first in fixed order, exactly one regular key.
func Normalize(codes []Code) (string, error) {
	modifiers, regulars, err := splitCodes(codes)
	if err != nil {
		return "", err
	}

	if len(regulars) == 0 {
		return "", &validate.Error{Field: "hotkey", Rule: "must include at least one regular key"}
	}
	if len(regulars) > 1 {
		return "", &validate.Error{Field: "hotkey", Rule: "can only have one regular key"}
	}

	parts := append(orderedModifiers(modifiers), regulars[0])
	return strings.Join(parts, "+"), nil
}

// Display renders a possibly incomplete combination for capture feedback.
// Unlike Normalize it accepts modifiers-only input and unknown codes.
func Display(codes []Code) string {
	modifiers := map[string]struct{}{}
	var regulars []string

	for _, code := range codes {
		if token, ok := modifierTokens[code]; ok {
			modifiers[token] = struct{}{}
			continue
		}
		if token, ok := keyTokens[code]; ok {
			regulars = append(regulars, token)
		}
	}

	sort.Strings(regulars)
	return strings.Join(append(orderedModifiers(modifiers), regulars...), "+")
}

func splitCodes(codes []Code) (map[string]struct{}, []string, error) {
	modifiers := map[string]struct{}{}
	var regulars []string

	for _, code := range codes {
		if token, ok := modifierTokens[code]; ok {
			modifiers[token] = struct{}{}
			continue
		}
		token, ok := keyTokens[code]
		if !ok {
			return nil, nil, &validate.Error{Field: "hotkey", Rule: "contains an unsupported key"}
		}
		regulars = append(regulars, token)
	}

	return modifiers, regulars, nil
}

func orderedModifiers(present map[string]struct{}) []string {
	ordered := make([]string, 0, len(present))
	for _, token := range modifierOrder {
		if _, ok := present[token]; ok {
			ordered = append(ordered, token)
		}
	}
	return ordered
}
