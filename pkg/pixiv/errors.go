package pixiv

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when an Image does not know enough about
// itself to resolve the requested field.
var ErrInvalidState = errors.New("image is missing identifier and original URL")

// ErrNotAnImage is returned when trying to read or save the payload of a
// video post, which has no still image.
var ErrNotAnImage = fmt.Errorf("%w: post is not an image", ErrInvalidState)

// ParseError is returned when a page does not have the structure we expect.
// This usually means the site's markup has changed.
type ParseError struct {
	// Source is what we were parsing, e.g. "artwork page".
	Source string
	// Reason describes what was missing or malformed.
	Reason string
	Err    error
}

func (err *ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("could not parse %s: %s: %v", err.Source, err.Reason, err.Err)
	}
	return fmt.Sprintf("could not parse %s: %s", err.Source, err.Reason)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func newParseError(source string, reason string, err error) *ParseError {
	return &ParseError{Source: source, Reason: reason, Err: err}
}
