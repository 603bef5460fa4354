package storage

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrCreate = errors.New("create error") // data directory or store file could not be created
	ErrOpen   = errors.New("open error")   // file could not be opened, or export dir unresolvable
	ErrRead   = errors.New("read error")   // I/O failure while reading
	ErrWrite  = errors.New("write error")  // I/O failure while writing
	ErrParse  = errors.New("parse error")  // persisted data is malformed
)

// Error is a storage failure of a given kind on a path.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
