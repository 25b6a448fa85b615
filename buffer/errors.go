package buffer

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrInvalidEncoding is wrapped by the *IOError returned when a source is
// not valid UTF-8 after byte order mark handling.
var ErrInvalidEncoding = errors.New("invalid UTF-8 text")

// IOError reports a failed load or save. Err carries the underlying cause
// and is reachable through errors.Is and errors.As.
type IOError struct {
	Op   string // "open", "read", "decode" or "save"
	Path string // empty for stream sources
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	cause := e.Err
	// A *fs.PathError already names the path.
	var pe *fs.PathError
	if errors.As(cause, &pe) && pe.Path == e.Path {
		cause = pe.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
}

func (e *IOError) Unwrap() error { return e.Err }
