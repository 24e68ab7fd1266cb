package utils

import (
	"errors"
	"net/http"
)

type ErrorKind string

const (
	KindMissingInput        ErrorKind = "MissingInput"
	KindUnsupportedFileType ErrorKind = "UnsupportedFileType"
	KindUpstreamFailure     ErrorKind = "UpstreamFailure"
	KindNotFound            ErrorKind = "NotFound"
	KindPayloadTooLarge     ErrorKind = "PayloadTooLarge"
	KindInternal            ErrorKind = "Internal"
)

// AppError is the error shape handlers turn into a JSON response.
type AppError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewMissingInputError(message string) *AppError {
	return &AppError{Kind: KindMissingInput, StatusCode: http.StatusBadRequest, Message: message}
}

func NewUnsupportedFileTypeError(mimeType string) *AppError {
	return &AppError{
		Kind:       KindUnsupportedFileType,
		StatusCode: http.StatusBadRequest,
		Message:    "Unsupported file type: " + mimeType,
	}
}

// NewUpstreamError keeps the caller-facing message generic and carries the
// cause in Details.
func NewUpstreamError(message string, err error) *AppError {
	appErr := &AppError{
		Kind:       KindUpstreamFailure,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Details:    "An internal server error occurred.",
		Err:        err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: message}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{Kind: KindPayloadTooLarge, StatusCode: http.StatusRequestEntityTooLarge, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError reports whether err is (or wraps) an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
