package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Sunset Over the Bosphorus", "sunset-over-the-bosphorus"},
		{"punctuation and double spaces", "Portrait  Study #3!", "portrait-study-3"},
		{"leading and trailing noise", "  --Blue Harbor-- ", "blue-harbor"},
		{"already a slug", "winter-harbor", "winter-harbor"},
		{"only punctuation", "!!!", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.title))
		})
	}
}
