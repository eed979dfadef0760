package command

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every malformed command matches ErrMalformedCommand.
var (
	ErrMalformedCommand = errors.New("malformed command")
	ErrUnknownCommand   = fmt.Errorf("%w: unknown command", ErrMalformedCommand)
	ErrWrongArity       = fmt.Errorf("%w: wrong number of arguments", ErrMalformedCommand)
)

// CommandError provides structured information about a rejected command.
type CommandError struct {
	Op    string   // Stage that rejected the command (e.g. "dispatch", "validate")
	Name  string   // Command name as parsed
	Args  []string // Arguments as parsed
	Want  int      // Expected argument count, for arity errors
	Cause error    // Underlying sentinel
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if errors.Is(e.Cause, ErrWrongArity) {
		return fmt.Sprintf("%s %s: %v (want %d, got %d)", e.Op, e.Name, e.Cause, e.Want, len(e.Args))
	}
	if len(e.Args) > 0 {
		return fmt.Sprintf("%s %s [%s]: %v", e.Op, e.Name, strings.Join(e.Args, " "), e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *CommandError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// IsMalformed reports whether err rejects a command as malformed
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedCommand)
}

func unknownCommand(cmd Command) error {
	return &CommandError{Op: "dispatch", Name: cmd.Name, Args: cmd.Args, Cause: ErrUnknownCommand}
}

func wrongArity(cmd Command, want int) error {
	return &CommandError{Op: "validate", Name: cmd.Name, Args: cmd.Args, Want: want, Cause: ErrWrongArity}
}
