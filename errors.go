package edo

import (
	"errors"
	"fmt"
)

// Sentinel errors for template parsing and rendering.
var (
	// ErrEmptyName indicates a placeholder with no name, such as "{}".
	ErrEmptyName = errors.New("empty placeholder name")

	// ErrUnterminated indicates a placeholder that is opened but never closed.
	ErrUnterminated = errors.New("unterminated placeholder")

	// ErrUnknownPlaceholder indicates a placeholder with no registered binding.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrHandlerFailed indicates a handler returned an error during rendering.
	ErrHandlerFailed = errors.New("handler failed")
)

// ParseError describes a syntax error found while parsing a template.
// Offset is the byte position of the opening brace of the placeholder that
// could not be parsed.
type ParseError struct {
	Offset int   // byte offset of the offending '{'
	Err    error // ErrEmptyName or ErrUnterminated
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError describes the placeholder that caused a render to fail.
type RenderError struct {
	Name string // placeholder name exactly as written in the template
	Err  error  // ErrUnknownPlaceholder, or ErrHandlerFailed wrapping the cause
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("placeholder %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Err
}
