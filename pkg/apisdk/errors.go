package apisdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/astecastudio/portfolio-api/pkg/httpx"
)

// Stable error codes shared by the server and this SDK.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAuthRequired       = "authentication_required"
	ErrorCodeAdminRequired      = "admin_required"
	ErrorCodeWrongPassword      = "wrong_password"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeUnsupportedMedia   = "unsupported_file_type"
	ErrorCodeServerError        = "internal_error"
)

// APIError is the error body every non-2xx response carries. It implements
// the error interface so the SDK can surface server errors as typed values,
// and handlers use it to write consistent responses.
type APIError struct {
	// StatusCode is the HTTP status for this error. Not part of the body.
	StatusCode int `json:"-"`

	// Code is the stable machine-readable identifier.
	Code string `json:"error"`

	// Description is for humans.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// WithDescription returns a copy carrying a more specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "a field failed validation",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	ErrAuthRequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuthRequired,
		Description: "a valid session token is required",
	}

	ErrAdminRequired = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAdminRequired,
		Description: "administrator privileges required",
	}

	ErrWrongPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWrongPassword,
		Description: "current password is incorrect",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	ErrUnsupportedMedia = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnsupportedMedia,
		Description: "the uploaded file type is not allowed",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into a typed *APIError.
// Bodies that are not the standard error shape fall back to a generic error
// carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
	}
}
