package config

import (
	"errors"
	"fmt"
)

// Error is a configuration problem with an actionable hint.
type Error struct {
	Code    string // for programmatic handling
	Message string
	Action  string
}

func (e *Error) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes.
const (
	CodeFileUnreadable = "FILE_UNREADABLE"
	CodeInvalidValue   = "INVALID_VALUE"
	CodeInvalidColor   = "INVALID_COLOR"
	CodeMissing        = "MISSING_CONFIG"
)

func errFileUnreadable(path string, err error) *Error {
	return &Error{
		Code:    CodeFileUnreadable,
		Message: fmt.Sprintf("Cannot read config file %s: %v", path, err),
		Action:  "Check the --config path, or omit it to use defaults",
	}
}

func errInvalidValue(key string, value any, want string) *Error {
	return &Error{
		Code:    CodeInvalidValue,
		Message: fmt.Sprintf("Invalid %s %v", key, value),
		Action:  fmt.Sprintf("Set %s to %s", key, want),
	}
}

func errInvalidColor(key, value string) *Error {
	return &Error{
		Code:    CodeInvalidColor,
		Message: fmt.Sprintf("Invalid %s %q", key, value),
		Action:  fmt.Sprintf("Set %s to a hex color such as #FFD700", key),
	}
}

// ErrMissing reports a required setting that is empty.
func ErrMissing(key, flag string) *Error {
	return &Error{
		Code:    CodeMissing,
		Message: fmt.Sprintf("Missing required setting %s", key),
		Action:  fmt.Sprintf("Pass %s or set %s", flag, envName(key)),
	}
}

// AsError returns err as an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}
