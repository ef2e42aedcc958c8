// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import "fmt"

// ValidationKind classifies why a catalogue document was rejected.
type ValidationKind int

const (
	// NotAnObject means the document is not a JSON object (including
	// documents that are not valid JSON at all).
	NotAnObject ValidationKind = iota

	// InvalidCategory means a category's value is not an object.
	InvalidCategory

	// InvalidTask means a task's value is not an object, or one of its
	// fields has the wrong shape (steps not an array of strings,
	// description not a string).
	InvalidTask
)

// String returns the kind name used in error messages and JSON output.
func (kind ValidationKind) String() string {
	switch kind {
	case NotAnObject:
		return "not_an_object"
	case InvalidCategory:
		return "invalid_category"
	case InvalidTask:
		return "invalid_task"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// ValidationError describes one violation found while validating a
// catalogue document. [Parse] reports every violation it finds, joined
// with errors.Join; errors.As retrieves the first.
type ValidationError struct {
	Kind ValidationKind

	// Category is the offending category (InvalidCategory) or the
	// category containing the offending task (InvalidTask).
	Category string

	// Task is the offending task key (InvalidTask only).
	Task string

	// Reason is a short human-readable explanation of the violation.
	Reason string

	// Err is the underlying decode error, when there is one.
	Err error
}

func (e *ValidationError) Error() string {
	var subject string
	switch e.Kind {
	case NotAnObject:
		subject = "catalogue"
	case InvalidCategory:
		subject = fmt.Sprintf("category %q", e.Category)
	case InvalidTask:
		subject = fmt.Sprintf("task %q in category %q", e.Task, e.Category)
	default:
		subject = e.Kind.String()
	}
	message := subject + ": " + e.Reason
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

// Unwrap returns the underlying decode error, if any.
func (e *ValidationError) Unwrap() error { return e.Err }
