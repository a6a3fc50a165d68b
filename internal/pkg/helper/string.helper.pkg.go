package helper

import (
	"strconv"
	"strings"
	"unicode"
)

func StringToInt(payload string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(payload))
}

// StringToIntOrZero mirrors a lenient numeric cast: anything unparsable is 0.
func StringToIntOrZero(payload string) int {
	result, err := StringToInt(payload)
	if err != nil {
		return 0
	}
	return result
}

// DigitsOnly drops every non-digit rune, e.g. "1111 2222" -> "11112222".
func DigitsOnly(payload string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, payload)
}

// MaskString keeps the last visible runes and replaces the rest with '*'.
// Spaces are preserved so formatted card numbers stay readable.
func MaskString(payload string, visible int) string {
	runes := []rune(payload)
	hidden := len(runes) - visible
	for i := 0; i < hidden && i < len(runes); i++ {
		if runes[i] != ' ' {
			runes[i] = '*'
		}
	}
	return string(runes)
}
