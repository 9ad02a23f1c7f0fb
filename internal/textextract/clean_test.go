package textextract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses space runs", "a    b\tc", "a b c"},
		{"collapses blank line runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"keeps single blank line", "a\n\nb", "a\n\nb"},
		{"strips control characters", "a\x00b\x07c", "abc"},
		{"handles windows line endings", "a\r\nb", "a\nb"},
		{"trims lines and edges", "  a  \n  b  ", "a\nb"},
		{"empty input", "   \n\t\n  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeProperties(t *testing.T) {
	in := "Jane  Doe\r\n\r\n\r\nSenior   Engineer\t\tAcme\n\n\n\nSkills:  Go,  SQL \x0b"
	out := Normalize(in)

	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "  ", "no runs of 2+ spaces")
	assert.NotContains(t, out, "\n\n\n", "no runs of 2+ blank lines")
	assert.Equal(t, out, strings.TrimSpace(out))
}
