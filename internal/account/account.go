// Package account canonicalizes Serbian bank account numbers into the
// segmented 3-13-2 form the Minimax import format expects.
package account

import "strings"

// Digits returns only the decimal digits of raw.
func Digits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Normalize re-segments raw as XXX-XXXXXXXXXXXXX-XX when it contains exactly
// 18 digits. Anything else comes back unchanged; the converter never invents
// digits it cannot justify.
func Normalize(raw string) string {
	digits := Digits(raw)
	if len(digits) == 18 {
		return digits[:3] + "-" + digits[3:16] + "-" + digits[16:]
	}
	return raw
}
