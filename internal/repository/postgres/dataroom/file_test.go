package dataroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "report", expected: "report"},
		{name: "percent", input: "100%", expected: `100\%`},
		{name: "underscore", input: "q1_final", expected: `q1\_final`},
		{name: "backslash first", input: `a\_b`, expected: `a\\\_b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}
