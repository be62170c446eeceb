package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every bounded context. The HTTP layer maps them to
// API error codes and status codes.
const (
	CodeTenantRequired       = "TENANT_REQUIRED"
	CodeTenantNotFound       = "TENANT_NOT_FOUND"
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidState         = "INVALID_STATE"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeAlreadyConverted     = "ALREADY_CONVERTED"
	CodeMissingDesign        = "MISSING_DESIGN"
	CodeAmountExceedsBalance = "AMOUNT_EXCEEDS_BALANCE"
	CodeNotInSale            = "NOT_IN_SALE"
	CodeExceedsRemaining     = "EXCEEDS_REMAINING"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors carrying instance details still match the package sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of the error with an extra detail attached.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...))
}

// AsDomainError extracts a DomainError from err, if there is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrTenantRequired       = NewDomainError(CodeTenantRequired, "X-Tenant-ID header is required")
	ErrTenantNotFound       = NewDomainError(CodeTenantNotFound, "Tenant not found")
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists        = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidState         = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrValidation           = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidQuantity      = NewDomainError(CodeInvalidQuantity, "Quantity must be positive")
	ErrInsufficientStock    = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrAlreadyConverted     = NewDomainError(CodeAlreadyConverted, "Quotation has already been converted to a sale")
	ErrMissingDesign        = NewDomainError(CodeMissingDesign, "Product has no associated design")
	ErrAmountExceedsBalance = NewDomainError(CodeAmountExceedsBalance, "Amount exceeds pending balance")
	ErrNotInSale            = NewDomainError(CodeNotInSale, "Product is not part of the sale")
	ErrExceedsRemaining     = NewDomainError(CodeExceedsRemaining, "Quantity exceeds remaining undelivered quantity")
)

// NotFoundf builds a NOT_FOUND error naming the missing resource.
func NotFoundf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeNotFound, format, args...)
}

// Validationf builds a VALIDATION_ERROR with a formatted message.
func Validationf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeValidation, format, args...)
}
