package engine

import (
	"errors"
	"fmt"
)

// Code classifies a rejected or terminal command.
type Code string

const (
	// CodeInvalidReference: the command names a room, door, mob or item
	// that does not exist, or needs a run or fight that is not in progress.
	CodeInvalidReference Code = "INVALID_REFERENCE"
	// CodeInsufficientResource: not enough XP, keys or memory.
	CodeInsufficientResource Code = "INSUFFICIENT_RESOURCE"
	// CodeLockedWithoutKey: a locked door and no key to open it.
	CodeLockedWithoutKey Code = "LOCKED_WITHOUT_KEY"
	// CodeTerminalCondition: the run ended, in death or victory.
	CodeTerminalCondition Code = "TERMINAL_CONDITION"
	// CodeCombatActive: the command cannot be issued mid-fight.
	CodeCombatActive Code = "COMBAT_ACTIVE"
)

// Error is the engine's coded error. Errors other than TerminalCondition mean
// nothing was written.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrInvalidReference     = &Error{Code: CodeInvalidReference, Message: "invalid reference"}
	ErrInsufficientResource = &Error{Code: CodeInsufficientResource, Message: "insufficient resource"}
	ErrLockedWithoutKey     = &Error{Code: CodeLockedWithoutKey, Message: "locked without key"}
	ErrTerminalCondition    = &Error{Code: CodeTerminalCondition, Message: "run terminated"}
	ErrCombatActive         = &Error{Code: CodeCombatActive, Message: "combat active"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func invalidRef(kind, id string) *Error {
	return &Error{
		Code:     CodeInvalidReference,
		Message:  fmt.Sprintf("no %s %q here", kind, id),
		Metadata: map[string]string{"kind": kind, "id": id},
	}
}

func insufficient(resource string, have, need int) *Error {
	return &Error{
		Code:    CodeInsufficientResource,
		Message: fmt.Sprintf("need %d %s, have %d", need, resource, have),
		Metadata: map[string]string{
			"resource": resource,
			"have":     fmt.Sprint(have),
			"need":     fmt.Sprint(need),
		},
	}
}

// CodeOf extracts the engine code from err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
