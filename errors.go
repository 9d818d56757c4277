package kasane

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoTarget is returned (wrapped in a ConfigurationError) when Write has
// neither an explicit target nor a default location.
var ErrNoTarget = errors.New("no target location")

// ErrEmptyLocation is returned (wrapped in a ConfigurationError) when an
// empty path is registered as a location.
var ErrEmptyLocation = errors.New("empty location")

// IOError is returned when a location cannot be read or written.
// Err is the underlying cause; errors.Is(err, fs.ErrNotExist) works through it.
type IOError struct {
	// Op is "read" or "write".
	Op       string
	Location Location
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Location, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the content of a location is not a valid
// settings document.
type DecodeError struct {
	Location Location
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Location, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when Write cannot serialize the updated document,
// typically because the value has a type the codec cannot represent.
type EncodeError struct {
	Location Location
	Key      string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %q (key %q): %v", e.Location, e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when the store is asked to do something its
// configuration cannot support. No I/O has happened when it is returned.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ioError wraps err from a source operation as an IOError. Context errors and
// errors that are already classified are returned as-is.
func ioError(op string, loc Location, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var (
		de *DecodeError
		ee *EncodeError
	)
	if errors.As(err, &de) || errors.As(err, &ee) {
		return err
	}
	return &IOError{Op: op, Location: loc, Err: err}
}
