package script

import (
	"errors"
	"fmt"
)

// Errors for script operations.
var (
	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("lua engine is closed")

	// ErrNoAcceptFunction is returned when a script does not define accept.
	ErrNoAcceptFunction = errors.New("script does not define an accept function")
)

// ScriptError ties a Lua failure to the script that raised it.
type ScriptError struct {
	// Name identifies the script.
	Name string
	// Offset is the raw offset being tested, or -1 during compilation.
	Offset int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("script %s at offset %d: %v", e.Name, e.Offset, e.Err)
	}
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
