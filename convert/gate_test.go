package convert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "yes", want: true},
		{input: "yes\n", want: true},
		{input: "YES\n", want: true},
		{input: "Yes\r\n", want: true},
		{input: "yEs", want: true},
		{input: "Yes ", want: false},
		{input: " yes\n", want: false},
		{input: "y\n", want: false},
		{input: "", want: false},
		{input: "\n", want: false},
		{input: "no\n", want: false},
		{input: "yes please\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.input, "\n", `\n`), func(t *testing.T) {
			if got := IsAffirmative(tt.input); got != tt.want {
				t.Errorf("IsAffirmative(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGate_Confirm(t *testing.T) {
	var out bytes.Buffer
	gate := NewGate(strings.NewReader("yes\n"), &out)

	ok, err := gate.Confirm(ActionConvert, 2, "/data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Are you sure you want to convert 2 LAZ files in /data? (yes/no): ", out.String())
}

func TestGate_ConfirmActions(t *testing.T) {
	for _, action := range []Action{ActionConvert, ActionMove, ActionDestroy} {
		t.Run(string(action), func(t *testing.T) {
			var out bytes.Buffer
			ok, err := NewGate(strings.NewReader("no\n"), &out).Confirm(action, 7, "/scans")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Contains(t, out.String(), "want to "+string(action)+" 7 LAZ files in /scans?")
		})
	}
}

func TestGate_EOFDeclines(t *testing.T) {
	var out bytes.Buffer
	ok, err := NewGate(strings.NewReader(""), &out).Confirm(ActionDestroy, 1, "/data")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_AnswerWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	ok, err := NewGate(strings.NewReader("yes"), &out).Confirm(ActionConvert, 1, "/data")
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestGate_ReadError(t *testing.T) {
	var out bytes.Buffer
	ok, err := NewGate(failingReader{}, &out).Confirm(ActionConvert, 1, "/data")
	assert.Error(t, err)
	assert.False(t, ok)
}
