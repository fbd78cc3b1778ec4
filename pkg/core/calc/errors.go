package calc

import "fmt"

// =============================================================================
// ERROR TAXONOMY
// All three kinds are recovered at the dispatcher boundary and surfaced as a
// single user-facing string; none escapes to the caller as a panic.
// =============================================================================

// ParseError signals that no calculation request could be built from the raw
// query (no determinable type, or an empty query).
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// ValidationError signals a missing required parameter or a calculator-level
// precondition failure. Field names the offending input when known.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// ComputationError signals a numeric failure during an otherwise valid
// calculation (IRR solver non-convergence).
type ComputationError struct {
	Msg string
}

func (e *ComputationError) Error() string { return e.Msg }

func parseErrorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

func validationErrorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
