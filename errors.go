package helpers

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// =============================================================================
// Error Kinds
// =============================================================================

// ErrorKind classifies a helper failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindParse
	KindIO
	KindRandomSource
	KindNoRequest
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindRandomSource:
		return "random source"
	case KindNoRequest:
		return "no request"
	}
	return "unknown"
}

var (
	// ErrParse matches errors from unparseable date text.
	ErrParse = errors.New("parse error")

	// ErrIO matches errors from missing or unreadable paths.
	ErrIO = errors.New("io error")

	// ErrRandomSource matches errors from a failing entropy source.
	ErrRandomSource = errors.New("random source error")

	// ErrNoRequest matches CurrentURL calls made outside a captured request.
	ErrNoRequest = errors.New("no current request")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindParse:
		return ErrParse
	case KindIO:
		return ErrIO
	case KindRandomSource:
		return ErrRandomSource
	case KindNoRequest:
		return ErrNoRequest
	}
	return nil
}

func (k ErrorKind) hint() string {
	switch k {
	case KindParse:
		return "use a date such as 2024-01-15 10:30:00, an RFC 3339 timestamp, or now/today/tomorrow"
	case KindIO:
		return "check that the path exists and is readable"
	case KindRandomSource:
		return "the system entropy source failed; retry or check the host"
	case KindNoRequest:
		return "wrap the HTTP handler with the request capture middleware"
	}
	return ""
}

// =============================================================================
// Error
// =============================================================================

// Error is returned by every helper that can fail.
// errors.Is matches it against the sentinel of its Kind.
type Error struct {
	Kind  ErrorKind
	Op    string // Operation that failed (e.g., "FormatDate")
	Input string // Offending input, if any
	Err   error
}

func (e *Error) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind ErrorKind, op, input string, err error) error {
	return errors.WithHint(&Error{Kind: kind, Op: op, Input: input, Err: err}, kind.hint())
}

// KindOf returns the kind of err, or KindUnknown if err did not come from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
