package errors

import (
	"fmt"
	"time"
)

// RuntimeError carries the context of a failure at the frame-loop
// boundary.
//
// It wraps errors with the component and operation that failed plus a
// timestamp, so a crash report from a raw-mode session still says what
// the engine was doing when the terminal went away.
type RuntimeError struct {
	Operation  string                 // What operation was being performed
	Component  string                 // Which subsystem (driver, decode, render, loop)
	Timestamp  time.Time              // When the error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewRuntimeError creates a RuntimeError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewRuntimeError("flush frame", "render", err)
//	}
func NewRuntimeError(operation, component string, cause error) *RuntimeError {
	if cause == nil {
		return nil
	}

	return &RuntimeError{
		Operation: operation,
		Component: component,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewRuntimeErrorWithAttrs creates a RuntimeError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	return NewRuntimeErrorWithAttrs("resize frames", "render", err,
//	    map[string]interface{}{
//	        "width":  w,
//	        "height": h,
//	    })
func NewRuntimeErrorWithAttrs(operation, component string, cause error, attrs map[string]interface{}) *RuntimeError {
	if cause == nil {
		return nil
	}

	return &RuntimeError{
		Operation:  operation,
		Component:  component,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: component={name}: {cause}"
// If the component is empty, it is omitted from the message.
func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil RuntimeError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	var msg string
	if e.Component != "" {
		msg = fmt.Sprintf("[%s] %s: component=%s: %v",
			timestamp,
			e.Operation,
			e.Component,
			e.Cause)
	} else {
		msg = fmt.Sprintf("[%s] %s: %v",
			timestamp,
			e.Operation,
			e.Cause)
	}

	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
