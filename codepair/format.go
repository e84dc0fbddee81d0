package codepair

import (
	"strconv"
	"strings"
)

// FormatDouble renders a float with 12 digits of precision, trims the
// trailing zeros, and keeps at least one digit after the decimal point.
// This is the canonical form every double in an ASCII DXF file uses.
func FormatDouble(val float64) string {
	s := strconv.FormatFloat(val, 'f', 12, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
