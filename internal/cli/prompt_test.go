package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.input), &out, "Write 2 changed file(s)?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Write 2 changed file(s)? [y/N] ", out.String())
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	assert.False(t, isTerminal(strings.NewReader("y\n")))
}
