package dto

import (
	"net/http"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request or domain validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Tenant and authentication error codes
const (
	ErrCodeTenantRequired = "ERR_TENANT_REQUIRED"
	ErrCodeTenantNotFound = "ERR_TENANT_NOT_FOUND"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired   = "ERR_TOKEN_EXPIRED"
	ErrCodeTenantMismatch = "ERR_TENANT_MISMATCH"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Business rule error codes
const (
	ErrCodeInvalidState         = "ERR_INVALID_STATE"
	ErrCodeInvalidQuantity      = "ERR_INVALID_QUANTITY"
	ErrCodeInsufficientStock    = "ERR_INSUFFICIENT_STOCK"
	ErrCodeAlreadyConverted     = "ERR_ALREADY_CONVERTED"
	ErrCodeMissingDesign        = "ERR_MISSING_DESIGN"
	ErrCodeAmountExceedsBalance = "ERR_AMOUNT_EXCEEDS_BALANCE"
	ErrCodeNotInSale            = "ERR_NOT_IN_SALE"
	ErrCodeExceedsRemaining     = "ERR_EXCEEDS_REMAINING"
)

// domainCodes maps domain error codes to API codes
var domainCodes = map[string]string{
	shared.CodeTenantRequired:       ErrCodeTenantRequired,
	shared.CodeTenantNotFound:       ErrCodeTenantNotFound,
	shared.CodeNotFound:             ErrCodeNotFound,
	shared.CodeAlreadyExists:        ErrCodeAlreadyExists,
	shared.CodeInvalidState:         ErrCodeInvalidState,
	shared.CodeValidation:           ErrCodeValidation,
	shared.CodeInvalidQuantity:      ErrCodeInvalidQuantity,
	shared.CodeInsufficientStock:    ErrCodeInsufficientStock,
	shared.CodeAlreadyConverted:     ErrCodeAlreadyConverted,
	shared.CodeMissingDesign:        ErrCodeMissingDesign,
	shared.CodeAmountExceedsBalance: ErrCodeAmountExceedsBalance,
	shared.CodeNotInSale:            ErrCodeNotInSale,
	shared.CodeExceedsRemaining:     ErrCodeExceedsRemaining,
}

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeTenantRequired: http.StatusBadRequest,
	ErrCodeTenantNotFound: http.StatusNotFound,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
	ErrCodeTenantMismatch: http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Business rule errors -> 409 for state conflicts, 422 for everything else
	ErrCodeInvalidState:         http.StatusConflict,
	ErrCodeAlreadyConverted:     http.StatusConflict,
	ErrCodeInvalidQuantity:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeMissingDesign:        http.StatusUnprocessableEntity,
	ErrCodeAmountExceedsBalance: http.StatusUnprocessableEntity,
	ErrCodeNotInSale:            http.StatusUnprocessableEntity,
	ErrCodeExceedsRemaining:     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code to its API code.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodes[code]; ok {
		return apiCode
	}
	return code
}
