package suffixgram

import (
	"errors"
	"fmt"
)

var (
	ErrCapacity           = errors.New("suffixgram: sequence exceeds configured capacity")
	ErrFormat             = errors.New("suffixgram: malformed index file")
	ErrLengthMismatch     = errors.New("suffixgram: paired index files disagree on length")
	ErrMalformedRecord    = errors.New("suffixgram: malformed sequence record")
	ErrInvalidNGramLength = errors.New("suffixgram: n-gram length must be positive")
)

// IOError reports a failed open, read or write on a named file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("suffixgram: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CapacityError is returned when the accumulated sequence would grow past Limit.
// Length is the size the buffer would have reached.
type CapacityError struct {
	Limit  int64
	Length int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("suffixgram: sequence length %d exceeds capacity %d", e.Length, e.Limit)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// FormatError describes an index file that can't be trusted.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("suffixgram: malformed index: %s", e.Reason)
	}
	return fmt.Sprintf("suffixgram: malformed index %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat || (e.Err != nil && errors.Is(e.Err, target))
}

func (e *FormatError) Unwrap() error { return e.Err }

// RecordError points at the first byte of input that is not a sequence letter.
// Line and Column are 1-based.
type RecordError struct {
	Line   int
	Column int
	Byte   byte
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("suffixgram: line %d column %d: unexpected byte %q in sequence record", e.Line, e.Column, e.Byte)
}

func (e *RecordError) Is(target error) bool { return target == ErrMalformedRecord }
