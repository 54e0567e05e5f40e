package logging

import "strings"

// maxValueLen caps how much of a single value ends up in a log line.
const maxValueLen = 256

var escaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// Sanitize makes an arbitrary string safe to embed in a single log line.
// Line breaks and tabs are escaped so they cannot forge extra entries, other
// control characters are dropped, and the result is truncated to 256 bytes.
func Sanitize(s string) string {
	s = escaper.Replace(s)

	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)

	if len(s) > maxValueLen {
		s = s[:maxValueLen] + "..."
	}
	return s
}
