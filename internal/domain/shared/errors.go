package shared

import "errors"

// ErrorKind classifies a domain error for transport mapping and retry policy.
type ErrorKind string

const (
	// KindValidation marks malformed or missing input. No side effects occurred.
	KindValidation ErrorKind = "VALIDATION"
	// KindConflict marks a business-rule violation given current state
	// (duplicate invoice, exceeds remaining, insufficient stock, ...).
	KindConflict ErrorKind = "CONFLICT"
	// KindConfiguration marks a tenant setup problem (missing chart-of-accounts
	// entries). It signals an operator error, not a caller mistake.
	KindConfiguration ErrorKind = "CONFIGURATION"
	// KindNotFound marks an absent entity. Entities outside the caller's tenant
	// scope are reported as not found so tenant existence never leaks.
	KindNotFound ErrorKind = "NOT_FOUND"
)

// DomainError represents a domain-level error with a stable code
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is allows errors.Is matching on code so callers can compare against sentinels
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// NewConflictError creates a business-rule conflict error
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: code, Message: message}
}

// NewConfigurationError creates a tenant configuration error
func NewConfigurationError(code, message string) *DomainError {
	return &DomainError{Kind: KindConfiguration, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

// IsKind reports whether err is a DomainError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// Common domain errors
var (
	ErrNotFound             = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState         = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock    = NewConflictError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrUnbalancedEntry      = NewConflictError("UNBALANCED_ENTRY", "Journal entry debits and credits do not balance")
	ErrCrossTenantReference = NewConflictError("CROSS_TENANT_REFERENCE", "Referenced entity belongs to another tenant")
)
