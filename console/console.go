// Package console handles the interactive side of nsping: prompts, hidden
// password input, clearing the screen and paging long lists.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultHeight is used when the terminal size is unknown.
const defaultHeight = 24

// Console reads user input and writes prompts.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// file descriptors, -1 when not backed by a file
	inFd  int
	outFd int

	pending chan readResult
}

// New creates a console on the given files, usually os.Stdin and os.Stdout.
func New(in, out *os.File) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

// NewFromReader creates a non-interactive console, mostly for tests.
func NewFromReader(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		inFd:  -1,
		outFd: -1,
	}
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether both input and output are terminals.
func (c *Console) IsInteractive() bool {
	return c.inFd >= 0 && c.outFd >= 0 && IsTerminal(uintptr(c.inFd)) && IsTerminal(uintptr(c.outFd))
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Prompt prints label and reads a trimmed line. io.EOF is returned only when
// the input ended before anything was typed. When ctx is done first, Prompt
// returns ctx.Err() and the next prompt picks up the line still being read.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	line, err := c.readLine(ctx, label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type readResult struct {
	line string
	err  error
}

// readLine prints label and returns the next line without its line ending.
func (c *Console) readLine(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, label)

	// A read abandoned by a cancelled prompt is still owed to the next caller.
	if c.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		c.pending = ch
	}

	select {
	case r := <-c.pending:
		c.pending = nil
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	}
}

// Password prints label and reads a secret without echoing it when the input
// is a terminal. Surrounding spaces are part of the secret.
func (c *Console) Password(ctx context.Context, label string) (string, error) {
	if c.inFd < 0 || !IsTerminal(uintptr(c.inFd)) {
		return c.readLine(ctx, label)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, label)
	secret, err := term.ReadPassword(c.inFd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// Pause waits for the user to press enter.
func (c *Console) Pause(ctx context.Context, message string) {
	if message != "" {
		message += " "
	}
	_, _ = c.Prompt(ctx, message+"Press enter to continue . . . ")
}

// Height returns the terminal height in lines.
func (c *Console) Height() int {
	if c.outFd < 0 {
		return defaultHeight
	}
	_, height, err := term.GetSize(c.outFd)
	if err != nil || height < 2 {
		return defaultHeight
	}
	return height
}

// Page prints lines, stopping every screenful until enter is pressed.
func (c *Console) Page(ctx context.Context, lines []string) {
	per := c.Height() - 1
	for i, line := range lines {
		if i > 0 && i%per == 0 {
			if _, err := c.Prompt(ctx, "  -- MORE --  "); err != nil {
				return
			}
		}
		fmt.Fprintln(c.out, line)
	}
}
