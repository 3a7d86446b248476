//go:build !windows

package console

import "fmt"

// Clear clears the screen when output is a terminal.
func (c *Console) Clear() error {
	if !c.IsInteractive() {
		return nil
	}
	_, err := fmt.Fprint(c.out, "\033[H\033[2J")
	return err
}
