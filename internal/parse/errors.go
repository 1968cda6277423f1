package parse

import (
	"errors"
	"fmt"
)

// SuggestError reports a failed pattern suggestion. The coordinator always
// recovers from it by installing the built-in default pattern, so it never
// surfaces to the user.
type SuggestError struct {
	FilePath string
	Cause    error
}

func (e *SuggestError) Error() string {
	return fmt.Sprintf("suggesting pattern for %s: %v", e.FilePath, e.Cause)
}

func (e *SuggestError) Unwrap() error { return e.Cause }

// ParseError reports a failed or empty parse. Strict marks the
// user-visible variant: the user crafted the pattern by hand and expects
// it to match, so zero matches is a reportable failure.
type ParseError struct {
	FilePath string
	Strict   bool
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "parse failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("parsing %s: %s: %v", e.FilePath, msg, e.Cause)
	}
	return fmt.Sprintf("parsing %s: %s", e.FilePath, msg)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// IsStrictParseError reports whether err is a parse failure that must be
// shown to the user.
func IsStrictParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Strict
}
