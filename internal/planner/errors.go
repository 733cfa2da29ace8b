package planner

import "fmt"

// ValidationError reports user-correctable input problems. The triggering
// action is aborted with no state change; the message is meant to be shown
// to the user as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
