package orchestrator

import (
	"errors"
	"fmt"
)

// WorkflowError represents a failure detected during workflow execution.
//
// Workflow errors carry a code classifying where in the taxonomy the failure
// sits, which determines how the boundary reports it:
//   - Validation: recoverable input problem, reported as a warning, no state touched
//   - Precondition: backing file missing before backup, fatal to the workflow
//   - I/O: store write or backup copy/rotation failed, workflow aborts
//   - Operation: an external operation returned failure, its message is used verbatim
//   - Internal: unexpected/unclassified failure caught at the boundary
type WorkflowError struct {
	// Code identifies the error category.
	Code WorkflowErrorCode

	// Message is the user-visible description.
	Message string

	// Workflow names the workflow that failed.
	Workflow string

	// Err is the underlying error, if any.
	Err error
}

// WorkflowErrorCode categorizes workflow errors.
type WorkflowErrorCode string

const (
	// ErrCodeValidation indicates malformed or missing user input.
	ErrCodeValidation WorkflowErrorCode = "VALIDATION"

	// ErrCodePrecondition indicates a required precondition failed
	// (e.g. the backing file is missing so no backup is possible).
	ErrCodePrecondition WorkflowErrorCode = "PRECONDITION"

	// ErrCodeIO indicates a store write or backup copy/rotation failure.
	ErrCodeIO WorkflowErrorCode = "IO"

	// ErrCodeOperation indicates an external operation reported failure.
	ErrCodeOperation WorkflowErrorCode = "OPERATION"

	// ErrCodeInternal indicates an unexpected failure caught at the boundary.
	ErrCodeInternal WorkflowErrorCode = "INTERNAL"
)

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e.Workflow != "" {
		return fmt.Sprintf("%s: %s (workflow=%s)", e.Code, e.Message, e.Workflow)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a validation failure.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var we *WorkflowError
	return errors.As(err, &we) && we.Code == ErrCodeValidation
}

// IsPreconditionError reports whether err is a precondition failure.
func IsPreconditionError(err error) bool {
	var we *WorkflowError
	return errors.As(err, &we) && we.Code == ErrCodePrecondition
}

// NewValidationError creates a WorkflowError for malformed user input.
func NewValidationError(workflow, message string) *WorkflowError {
	return &WorkflowError{Code: ErrCodeValidation, Message: message, Workflow: workflow}
}

// NewPreconditionError creates a WorkflowError for a failed precondition.
func NewPreconditionError(workflow, message string, err error) *WorkflowError {
	return &WorkflowError{Code: ErrCodePrecondition, Message: message, Workflow: workflow, Err: err}
}

// NewIOError creates a WorkflowError for a store or backup I/O failure.
func NewIOError(workflow, message string, err error) *WorkflowError {
	return &WorkflowError{Code: ErrCodeIO, Message: message, Workflow: workflow, Err: err}
}

// NewOperationError creates a WorkflowError for an external operation
// failure. The message is reported verbatim.
func NewOperationError(workflow, message string, err error) *WorkflowError {
	return &WorkflowError{Code: ErrCodeOperation, Message: message, Workflow: workflow, Err: err}
}
