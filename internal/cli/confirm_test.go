package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"y\r", true},
		{"yes", true},
		{"\n", false},
		{"n\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			var out bytes.Buffer
			got := confirm(strings.NewReader(tc.input), &out, "Remove? [y/N] ")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Remove? [y/N] ", out.String())
		})
	}
}

func TestConfirm_NilReaderDeclines(t *testing.T) {
	assert.False(t, confirm(nil, nil, "x"))
}
