package tokens

import (
	"errors"
	"fmt"
)

// ErrNotExist is returned by Load when the token file does not exist.
var ErrNotExist = errors.New("token file does not exist")

// ErrInvalidRecord is returned by Set for a record that could not be read back.
var ErrInvalidRecord = errors.New("invalid token record")

// CorruptError indicates the token file could not be parsed.
type CorruptError struct {
	Path   string
	Line   int
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("token file %s is corrupt at line %d: %s", e.Path, e.Line, e.Reason)
}
