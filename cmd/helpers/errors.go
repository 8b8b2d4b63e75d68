package main

import (
	"github.com/cockroachdb/errors"

	"github.com/artpar/helpers"
	"github.com/artpar/helpers/internal/shell/decode"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitUsageError      = 2
	ExitParseError      = 3
	ExitIOError         = 4
	ExitRandomError     = 5
	ExitHTTPServerError = 6
)

// =============================================================================
// Command Error
// =============================================================================

// CommandError carries the exit code of a failed command.
type CommandError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *CommandError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}

	switch helpers.KindOf(err) {
	case helpers.KindParse:
		return ExitParseError
	case helpers.KindIO:
		return ExitIOError
	case helpers.KindRandomSource:
		return ExitRandomError
	}

	if errors.Is(err, decode.ErrInvalidDocument) || errors.Is(err, decode.ErrUnknownFormat) {
		return ExitParseError
	}
	return ExitUsageError
}

// usageError reports a bad flag or argument value.
func usageError(op, format string, args ...any) error {
	return &CommandError{Op: op, Err: errors.Newf(format, args...), ExitCode: ExitUsageError}
}
