package textextract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reSpaceRun     = regexp.MustCompile(`[ \t]+`)
	reBlankLineRun = regexp.MustCompile(`\n{3,}`)
)

// Normalize applies the post-processing shared by every format: control
// characters stripped, runs of spaces collapsed to one, runs of blank lines
// collapsed to a single blank line, lines and the whole text trimmed.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	s = reSpaceRun.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = reBlankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
