package source

import (
	"errors"
	"fmt"
)

// ErrEncoding reports that a file is not UTF-8 text. Such files are skipped, not fatal.
var ErrEncoding = errors.New("not valid UTF-8 text")

// LoadError describes a filesystem failure for a tree root or a single file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsEncoding reports whether err is (or wraps) an encoding failure.
func IsEncoding(err error) bool {
	return errors.Is(err, ErrEncoding)
}
