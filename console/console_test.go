package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	c := NewFromReader(strings.NewReader("  testlandia \nsecond"), &out)

	got, err := c.Prompt(context.Background(), "Nation: ")
	require.NoError(t, err)
	assert.Equal(t, "testlandia", got)
	assert.Equal(t, "Nation: ", out.String())

	got, err = c.Prompt(context.Background(), "Nation: ")
	require.NoError(t, err, "last line without newline")
	assert.Equal(t, "second", got)

	_, err = c.Prompt(context.Background(), "Nation: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptCancelled(t *testing.T) {
	var out bytes.Buffer
	c := NewFromReader(strings.NewReader("testlandia\n"), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String(), "nothing is prompted once cancelled")
}

func TestPromptReturnsOnCancelWhileBlocked(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	c := NewFromReader(r, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Prompt(ctx, "> ")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned read still delivers its line to the next prompt.
	go func() {
		_, _ = w.Write([]byte("testlandia\n"))
	}()
	got, err := c.Prompt(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "testlandia", got)
}

func TestPasswordFallsBackToLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hunter2\n", want: "hunter2"},
		{name: "keeps surrounding spaces", input: "  hunter2 \n", want: "  hunter2 "},
		{name: "crlf", input: "hunter2\r\n", want: "hunter2"},
		{name: "no trailing newline", input: " pw", want: " pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewFromReader(strings.NewReader(tt.input), &out)

			got, err := c.Password(context.Background(), "Password: ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, c.IsInteractive())
		})
	}
}

func TestPage(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "line")
	}

	var out bytes.Buffer
	c := NewFromReader(strings.NewReader("\n\n"), &out)
	c.Page(context.Background(), lines)

	assert.Equal(t, 30, strings.Count(out.String(), "line\n"))
	assert.Equal(t, 1, strings.Count(out.String(), "-- MORE --"), "one pause for 30 lines at height 24")
}

func TestClearNonInteractive(t *testing.T) {
	var out bytes.Buffer
	c := NewFromReader(strings.NewReader(""), &out)
	require.NoError(t, c.Clear())
	assert.Empty(t, out.String())
}
