// Package diag contains building blocks for errors that point into a piece of
// source text.
package diag

import (
	"fmt"
	"strings"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
	// Cause is the underlying error, if any. It is exposed via Unwrap so that
	// callers can test for sentinel errors with errors.Is.
	Cause error
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	line, col := e.Context.Position()
	return fmt.Sprintf("%s: %s:%d:%d: %s", e.Type, e.Context.Name, line, col, e.Message)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", title(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.ShowCompact()
}

// Variables controlling the style of the message.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
