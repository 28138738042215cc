package tools

import (
	"errors"
	"fmt"
	"strings"
)

// ExhaustedError reports a call to Next on an iterator that has no more
// valid elements to give
type ExhaustedError struct {
	Name string
}

func (e *ExhaustedError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("no more valid elements in iterator '%s'", e.Name)
	}
	return "no more valid elements in this iterator"
}

// NewExhaustedError creates a new exhausted-iterator error
func NewExhaustedError(name string) error {
	return &ExhaustedError{
		Name: name,
	}
}

// UnsupportedOperationError reports an operation this library does not
// support
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation '%s' is not supported", e.Operation)
}

// NewUnsupportedOperationError creates a new unsupported-operation error
func NewUnsupportedOperationError(operation string) error {
	return &UnsupportedOperationError{
		Operation: operation,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents one or more validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// NewValidationError creates a validation error with a single issue
func NewValidationError(field, message string) error {
	return &ValidationError{
		Issues: []ValidationIssue{
			{Field: field, Message: message},
		},
	}
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// RecoverError converts a panic recovery value to an error
func RecoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return fmt.Errorf("panic recovered: %w", v)
	case string:
		return fmt.Errorf("panic recovered: %s", v)
	default:
		return fmt.Errorf("panic recovered: %v", v)
	}
}

// IsExhaustedError checks if an error is or wraps an exhausted-iterator
// error
func IsExhaustedError(err error) bool {
	var target *ExhaustedError
	return errors.As(err, &target)
}

// IsUnsupportedOperationError checks if an error is or wraps an
// unsupported-operation error
func IsUnsupportedOperationError(err error) bool {
	var target *UnsupportedOperationError
	return errors.As(err, &target)
}

// IsValidationError checks if an error is or wraps a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
