package patch

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks on engine failures.
var (
	ErrConflictingReplacements = errors.New("conflicting replacements")
	ErrNoSolution              = errors.New("suggestion has no solutions")
)

// ConflictError describes two replacements that cannot both be applied.
type ConflictError struct {
	FileName string
	First    Edit
	Second   Edit
}

func (e *ConflictError) Error() string {
	prefix := ""
	if e.FileName != "" {
		prefix = e.FileName + ": "
	}
	return fmt.Sprintf("%sconflicting replacements: %s (suggestion %d) and %s (suggestion %d)",
		prefix,
		e.First.Range, e.First.Suggestion,
		e.Second.Range, e.Second.Suggestion)
}

// Is matches ErrConflictingReplacements.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflictingReplacements
}

// NoSolutionError reports a suggestion with an empty solution list.
type NoSolutionError struct {
	Index   int
	Message string
}

func (e *NoSolutionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("suggestion %d has no solutions", e.Index)
	}
	return fmt.Sprintf("suggestion %d (%s) has no solutions", e.Index, e.Message)
}

// Is matches ErrNoSolution.
func (e *NoSolutionError) Is(target error) bool {
	return target == ErrNoSolution
}

// SelectionError wraps a failure returned by a Selector.
type SelectionError struct {
	Index int
	Err   error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select solution for suggestion %d: %v", e.Index, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}
