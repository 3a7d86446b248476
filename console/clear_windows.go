//go:build windows

package console

import (
	"fmt"
	"os"
	"os/exec"
)

// Clear clears the screen when output is a terminal.
// Windows implementation - older consoles ignore ANSI escapes, so use cls
func (c *Console) Clear() error {
	if !c.IsInteractive() {
		return nil
	}
	cmd := exec.Command("cmd", "/c", "cls")
	cmd.Stdout = c.out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	return nil
}
