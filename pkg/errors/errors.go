// Package errors defines the error taxonomy shared by the parser, the
// evaluator and the input readers, and maps error chains to process exit
// codes for the batch CLI.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnknownTerm     = errors.New("term not in vocabulary")
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitSyntax   = 2
	ExitInput    = 3
	ExitInternal = 4
)

// AppError attaches a message and, for syntax errors, the byte offset into
// the offending query to one of the sentinel errors above.
type AppError struct {
	Err     error
	Message string
	Offset  int
}

func (e *AppError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Err.Error(), e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
		Offset:  -1,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
		Offset:  -1,
	}
}

// Syntaxf builds an ErrSyntax positioned at offset.
func Syntaxf(offset int, format string, args ...any) *AppError {
	return &AppError{
		Err:     ErrSyntax,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}

// Offset returns the query offset recorded in err, or -1.
func Offset(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Offset
	}
	return -1
}

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrSyntax):
		return ExitSyntax
	case errors.Is(err, ErrMalformedRecord), errors.Is(err, ErrInvalidInput):
		return ExitInput
	case errors.Is(err, ErrUnknownTerm), errors.Is(err, ErrInternal):
		return ExitInternal
	default:
		return ExitFailure
	}
}
