package scoring

import (
	"strconv"
	"strings"
)

// CoerceFloat converts locale-formatted numeric text into a float64.
// Thousands separators, quote artifacts and the "-" placeholder used by the
// exchange for empty cells all appear in real exports; none of them may abort
// a scan. Any value that still fails to parse becomes 0.0 (no signal).
func CoerceFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0.0
	}

	s = strings.NewReplacer(",", "", `"`, "", "'", "").Replace(s)

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return v
}
