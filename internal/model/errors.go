package model

import (
	"errors"
	"fmt"
)

// ErrorCode tags the analysis error taxonomy. Codes are stable wire
// values; the human-readable text is localized separately.
type ErrorCode string

const (
	ErrCodeNoData  ErrorCode = "NO_DATA"
	ErrCodeTimeout ErrorCode = "TIMEOUT_ERROR"
	ErrCodeGeneral ErrorCode = "GENERAL_ERROR"
)

// AnalysisError carries a taxonomy code plus a message already
// localized for the active language.
type AnalysisError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAnalysisError(code ErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, Err: err}
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// AsAnalysisError unwraps err to an AnalysisError when one is present
// in the chain.
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var aerr *AnalysisError
	if errors.As(err, &aerr) {
		return aerr, true
	}
	return nil, false
}
