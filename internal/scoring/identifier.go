package scoring

import "strings"

// NormalizeID canonicalizes a raw security code into a 4-digit, zero-padded
// identifier. Regulatory CSV exports wrap codes in Excel formula escapes
// (`="2330"`), quotes and stray whitespace; only the decimal digits matter.
// Returns "" when no digits remain, which callers must treat as
// unidentifiable and skip.
//
// The function is total and idempotent: NormalizeID(NormalizeID(x)) ==
// NormalizeID(x) for every input.
func NormalizeID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}

	if len(digits) >= 4 {
		return digits
	}
	return strings.Repeat("0", 4-len(digits)) + digits
}
