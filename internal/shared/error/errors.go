package error

import (
	"errors"
	"fmt"
	"net/http"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"` // client message
	RequestID string `json:"requestId,omitempty"`
}

const (
	connectionFailed  = "CONNECTION_FAILED"  // errInfo
	notFound          = "NOT_FOUND"          // errInfo
	conflict          = "CONFLICT"           // errInfo
	persistenceFailed = "PERSISTENCE_FAILED" // errInfo
	validationFailed  = "VALIDATION_FAILED"  // errInfo
	unsupported       = "UNSUPPORTED"        // errInfo
)

// Persistence error taxonomy. Every failure of the data layer wraps one of these.
var (
	ErrConnection  = NewDomainError(connectionFailed)
	ErrNotFound    = NewDomainError(notFound)
	ErrConflict    = NewDomainError(conflict)
	ErrPersistence = NewDomainError(persistenceFailed)
	ErrValidation  = NewDomainError(validationFailed)
	ErrUnsupported = NewDomainError(unsupported)
)

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "잘못된 요청입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}
)

func init() {
	RegisterDomainErrorResponse(connectionFailed, ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "DATA-001",
		Message: "데이터베이스에 연결할 수 없습니다.",
	})
	RegisterDomainErrorResponse(notFound, ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "DATA-002",
		Message: "요청한 데이터를 찾을 수 없습니다.",
	})
	RegisterDomainErrorResponse(conflict, ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DATA-003",
		Message: "이미 존재하는 데이터입니다.",
	})
	RegisterDomainErrorResponse(persistenceFailed, ErrorResponse{
		Status:  http.StatusUnprocessableEntity,
		Code:    "DATA-004",
		Message: "데이터를 저장할 수 없습니다.",
	})
	RegisterDomainErrorResponse(validationFailed, ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "DATA-005",
		Message: "데이터 검증에 실패했습니다.",
	})
	RegisterDomainErrorResponse(unsupported, ErrorResponse{
		Status:  http.StatusNotImplemented,
		Code:    "DATA-006",
		Message: "지원하지 않는 작업입니다.",
	})
}

// ValidationError reports the first record of a bulk conversion that could not become an entity.
type ValidationError struct {
	Index  int    // zero-based record position
	Column string // offending column, empty when the failure is not column specific
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("record %d: column %q: %s", e.Index, e.Column, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}
