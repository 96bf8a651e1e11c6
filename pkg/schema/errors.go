package schema

import "fmt"

// LoadError reports that the schema definition is missing or malformed.
// It is fatal to any payload build: no schema, no UI.
type LoadError struct {
	Source string // file path, or "embedded" for the built-in definition
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("schema load failed (%s): %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DefError represents a single definition failure found during validation.
type DefError struct {
	Group  string
	Param  string
	Reason string
}

func (e *DefError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("group %q: %s", e.Group, e.Reason)
	}
	return fmt.Sprintf("group %q, parameter %q: %s", e.Group, e.Param, e.Reason)
}

// AggregateError collects every validation failure so a malformed schema is
// reported in one pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d schema validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}
