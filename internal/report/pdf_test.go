package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "short line", 20, []string{"short line"}},
		{"breaks on words", "alpha beta gamma delta", 11, []string{"alpha beta", "gamma delta"}},
		{"single long word kept whole", "supercalifragilistic", 5, []string{"supercalifragilistic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.text, tt.width))
		})
	}
}

func TestWrapRespectsWidth(t *testing.T) {
	text := strings.Repeat("word ", 100)
	for _, line := range wrap(text, 40) {
		assert.LessOrEqual(t, len(line), 40)
	}
}
