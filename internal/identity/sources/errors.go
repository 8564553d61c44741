package sources

import (
	"context"
	"errors"
	"fmt"

	"custid/internal/identity/models"
	"custid/pkg/platform/sentinel"
)

// ErrorCategory is the normalized failure taxonomy for source reads.
type ErrorCategory string

const (
	// ErrorTimeout indicates the read hit its deadline.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorCancelled indicates the read was abandoned because its context was cancelled.
	ErrorCancelled ErrorCategory = "cancelled"

	// ErrorSourceOutage indicates the source system is unavailable.
	ErrorSourceOutage ErrorCategory = "source_outage"

	// ErrorBadData indicates the source returned a record that could not be decoded.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorTooManyMatches indicates the lookup matched more records than one read returns.
	ErrorTooManyMatches ErrorCategory = "too_many_matches"

	// ErrorInternal indicates an unexpected failure.
	ErrorInternal ErrorCategory = "internal"
)

// AdapterError wraps a source read failure with a normalized category.
type AdapterError struct {
	Category   ErrorCategory
	Source     models.SourceSystem
	Op         string
	Underlying error
	Retryable  bool
}

func (e *AdapterError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("source %s [%s] %s: %v", e.Source, e.Category, e.Op, e.Underlying)
	}
	return fmt.Sprintf("source %s [%s] %s", e.Source, e.Category, e.Op)
}

func (e *AdapterError) Unwrap() error {
	return e.Underlying
}

// NewAdapterError creates a normalized adapter error.
func NewAdapterError(category ErrorCategory, source models.SourceSystem, op string, underlying error) *AdapterError {
	retryable := category == ErrorTimeout || category == ErrorSourceOutage
	return &AdapterError{
		Category:   category,
		Source:     source,
		Op:         op,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// Classify wraps a reader error into an AdapterError. Nil stays nil.
func Classify(source models.SourceSystem, op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *AdapterError
	if errors.As(err, &ae) {
		return err
	}

	category := ErrorInternal
	switch {
	case errors.Is(err, context.Canceled):
		category = ErrorCancelled
	case errors.Is(err, context.DeadlineExceeded):
		category = ErrorTimeout
	case errors.Is(err, sentinel.ErrUnavailable):
		category = ErrorSourceOutage
	case errors.Is(err, sentinel.ErrBadData):
		category = ErrorBadData
	case errors.Is(err, sentinel.ErrTooManyMatches):
		category = ErrorTooManyMatches
	}
	return NewAdapterError(category, source, op, err)
}

// IsRetryable reports whether err is worth retrying by the caller.
func IsRetryable(err error) bool {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, defaulting to internal.
func GetCategory(err error) ErrorCategory {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ErrorInternal
}
