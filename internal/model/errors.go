package model

import "fmt"

// IOError reports a failure to open, read or write a file
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports input that is not a usable chat export
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DateFormatError reports a message date that is not an ISO-8601 timestamp
type DateFormatError struct {
	Value any
	Err   error
}

func (e *DateFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid message date %v: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid message date %v", e.Value)
}

func (e *DateFormatError) Unwrap() error { return e.Err }
