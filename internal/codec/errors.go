package codec

import (
	"errors"
	"fmt"

	"github.com/ytget/yt-player/internal/model"
)

// FormatError reports input that does not decode to the expected record shape.
type FormatError struct {
	Shape string // "favorites", "history" or "session"
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Shape, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, model.ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == model.ErrFormat
}

func formatErr(shape string, err error) error {
	return &FormatError{Shape: shape, Err: err}
}

func formatErrf(shape, format string, args ...any) error {
	return &FormatError{Shape: shape, Err: fmt.Errorf(format, args...)}
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
