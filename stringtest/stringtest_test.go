package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/colordropper/stringtest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []string
	}{
		"empty":    {input: nil, want: ""},
		"single":   {input: []string{"a"}, want: "a"},
		"multiple": {input: []string{"a", "b", "c"}, want: "a\nb\nc"},
		"blank":    {input: []string{"a", "", "c"}, want: "a\n\nc"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.JoinLF(tc.input...))
		})
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.Lines())
	assert.Equal(t, "a\nb\n", stringtest.Lines("a", "b"))
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"plain":      {input: "#ff0000", want: "#ff0000"},
		"truecolor":  {input: "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀\x1b[0m", want: "▀"},
		"cursor":     {input: "\x1b[?25lhi\x1b[2J", want: "hi"},
		"mixed text": {input: "a\x1b[1mb\x1b[0mc", want: "abc"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.StripANSI(tc.input))
		})
	}
}
