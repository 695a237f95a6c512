// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonp

import "fmt"

// LexError is the concrete type of errors reported by Lex.
type LexError struct {
	Offset  int // byte offset in the input where the error was detected
	Message string
}

// Error satisfies the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Message)
}

// ParseError is the concrete type of errors reported by the parser for
// input that does not form a complete JSON value.
type ParseError struct {
	// Offset is the byte offset of the offending token, or the length of the
	// input if the error occurred at the end of input. It is -1 if the
	// location is not known.
	Offset  int
	Message string

	Err error // the underlying cause, if any
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return "parse error: " + e.Message
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.Err }
