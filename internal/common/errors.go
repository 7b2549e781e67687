package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code        string
	Message     string
	Remediation string
	Cause       error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Document-level failure codes. Everything not listed here degrades to a
// default value and is absorbed inside the stage that hit it.
const (
	CodeAcquisitionFailed  = "ACQUISITION_FAILED"
	CodeNoUsableCandidates = "NO_USABLE_CANDIDATES"
	CodeInterpreterFailed  = "INTERPRETER_FAILED"
	CodeConfig             = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnreadable   = errors.New("document unreadable")
	ErrInternal     = errors.New("internal error")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NewAcquisitionFailure builds the terminal "document could not be read"
// error with the user-facing remediation text attached.
func NewAcquisitionFailure(textLen int) *AppError {
	return &AppError{
		Code:        CodeAcquisitionFailed,
		Message:     fmt.Sprintf("document text too short to extract from (%d chars after OCR fallback)", textLen),
		Remediation: "The report could not be read. Please re-upload a clearer scan or the original PDF downloaded from the bureau.",
		Cause:       ErrUnreadable,
	}
}

func NewNoUsableCandidates(cause error) *AppError {
	return &AppError{
		Code:        CodeNoUsableCandidates,
		Message:     "no usable score or totals could be extracted from the report",
		Remediation: "The report layout was not recognized. Please upload the original PDF issued by the bureau rather than a re-saved or photographed copy.",
		Cause:       cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsAppCode reports whether err carries the given AppError code.
func IsAppCode(err error, code string) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
