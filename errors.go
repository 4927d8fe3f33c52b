package hgt

import (
	"errors"
	"fmt"
)

var (
	// ErrParseLatLong means the file name does not encode a tile origin.
	ErrParseLatLong = errors.New("hgt: malformed coordinate string")
	// ErrFilesize means the file length matches no known resolution.
	ErrFilesize = errors.New("hgt: unrecognized file size")
	// ErrRead means the file could not be opened or its samples read.
	ErrRead = errors.New("hgt: read failed")
)

// Error is returned by every tile constructor. Kind is one of
// ErrParseLatLong, ErrFilesize or ErrRead.
type Error struct {
	Kind error
	Path string
	Err  error
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		if e.Path == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%v (%s)", e.Err, e.Path)
	}
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}
