package pipeline

import (
	"errors"
	"fmt"
)

var ErrBlankLine = errors.New("blank line")

// IOError reports a failure to open, create, read, write or close one of the
// pipeline's files.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s stream: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports an input line that is not a valid record.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RecordError reports a well-formed record whose multiples cannot be computed,
// e.g. because one of its divisors is zero.
type RecordError struct {
	Line int
	Text string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("could not compute multiples for line %d '%s': %v", e.Line, e.Text, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
