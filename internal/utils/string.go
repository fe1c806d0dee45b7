package utils

import "strconv"

// FormatWithCommas renders n with thousands separators ("1234567" -> "1,234,567")
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if len(s) > 0 && s[0] == '-' {
		start = 1
	}
	if len(s)-start <= 3 {
		return s
	}

	out := make([]byte, 0, len(s)+(len(s)-start-1)/3)
	out = append(out, s[:start]...)
	lead := (len(s) - start) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[start:start+lead]...)
	for i := start + lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
