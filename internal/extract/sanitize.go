package extract

import "strings"

// SanitizeForTransport reduces text to printable ASCII plus newlines. This
// runs immediately before the request crosses the process boundary, the last
// point where we control the bytes.
func SanitizeForTransport(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		}
	}
	return b.String()
}
