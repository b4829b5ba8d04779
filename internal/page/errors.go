// Package page - errors.go defines the error types for page loading and parsing.
package page

import (
	"errors"
	"fmt"
)

// ParseError represents a failure to parse page HTML.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("page parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RenderRequiredError signals that a plain HTTP fetch produced a page with
// too little visible content, and a browser-rendered retry is needed.
type RenderRequiredError struct {
	URL string
}

func (e *RenderRequiredError) Error() string {
	return fmt.Sprintf("page %s requires browser rendering (too little visible content)", e.URL)
}

// IsRenderRequired reports whether err is a RenderRequiredError.
func IsRenderRequired(err error) bool {
	var renderErr *RenderRequiredError
	return errors.As(err, &renderErr)
}
