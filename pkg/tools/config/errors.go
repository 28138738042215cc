package config

import (
	"fmt"
	"strings"
)

// NullKeyError reports a data entry that has no key
type NullKeyError struct {
	Data *Data
}

func (e *NullKeyError) Error() string {
	return fmt.Sprintf("a key is required, none was given for %v", e.Data)
}

// NewNullKeyError creates a new null-key error
func NewNullKeyError(data *Data) error {
	return &NullKeyError{
		Data: data,
	}
}

// ConfigurationError reports an invalid or unusable configuration entry
type ConfigurationError struct {
	Key     string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" && e.Cause != nil {
		return fmt.Sprintf("configuration error for '%s': %s: %v", e.Key, e.Message, e.Cause)
	} else if e.Key != "" {
		return fmt.Sprintf("configuration error for '%s': %s", e.Key, e.Message)
	} else if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(key, message string, cause error) error {
	return &ConfigurationError{
		Key:     key,
		Message: message,
		Cause:   cause,
	}
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsNullKeyError checks if an error is a null-key error
func IsNullKeyError(err error) bool {
	_, ok := err.(*NullKeyError)
	return ok
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}
