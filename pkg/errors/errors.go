package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeScrape     = "SCRAPE_ERROR"
	CodeModel      = "MODEL_ERROR"
	CodeConfig     = "CONFIG_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// ValidationError marks input rejected before any work is done.
type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// ScrapeError wraps a failed fetch or parse of the target site.
type ScrapeError struct {
	*AppError
	URL       string
	Operation string
}

func NewScrapeError(message, url, operation string, cause error) *ScrapeError {
	return &ScrapeError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeScrape,
			StatusCode: 502,
			Context: map[string]any{
				"url":       url,
				"operation": operation,
			},
			Cause: cause,
		},
		URL:       url,
		Operation: operation,
	}
}

// ModelError wraps a failed call to the text generation provider.
type ModelError struct {
	*AppError
	Provider string
	Model    string
}

func NewModelError(provider, model string, cause error) *ModelError {
	return &ModelError{
		AppError: &AppError{
			Message:    fmt.Sprintf("%s generation failed", provider),
			Code:       CodeModel,
			StatusCode: 502,
			Context: map[string]any{
				"provider": provider,
				"model":    model,
			},
			Cause: cause,
		},
		Provider: provider,
		Model:    model,
	}
}

type ConfigError struct {
	*AppError
	Key string
}

func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeConfig,
			StatusCode: 500,
			Context: map[string]any{
				"key": key,
			},
		},
		Key: key,
	}
}

func IsScrapeError(err error) bool {
	var target *ScrapeError
	return stderrors.As(err, &target)
}

func IsModelError(err error) bool {
	var target *ModelError
	return stderrors.As(err, &target)
}

func IsConfigError(err error) bool {
	var target *ConfigError
	return stderrors.As(err, &target)
}
