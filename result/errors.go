package result

import (
	"context"
	"errors"

	"github.com/lukemcguire/canonurl/urlutil"
)

// ErrorCategory represents the classification of a canonicalization error.
type ErrorCategory string

const (
	CategoryMalformedURL         ErrorCategory = "malformed_url"
	CategoryInvalidArgument      ErrorCategory = "invalid_argument"
	CategoryUnsupportedAlgorithm ErrorCategory = "unsupported_algorithm"
	CategoryCanceled             ErrorCategory = "canceled"
	CategoryTimeout              ErrorCategory = "timeout"
	CategoryUnknown              ErrorCategory = "unknown"
)

// ClassifyError determines the error category of err.
func ClassifyError(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.Is(err, urlutil.ErrMalformedURL):
		return CategoryMalformedURL
	case errors.Is(err, urlutil.ErrUnsupportedAlgorithm):
		return CategoryUnsupportedAlgorithm
	case errors.Is(err, urlutil.ErrInvalidArgument):
		return CategoryInvalidArgument
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	default:
		return CategoryUnknown
	}
}

// FormatCategory returns a human-readable label for an error category.
func FormatCategory(cat ErrorCategory) string {
	switch cat {
	case CategoryMalformedURL:
		return "Malformed URLs"
	case CategoryInvalidArgument:
		return "Invalid Arguments"
	case CategoryUnsupportedAlgorithm:
		return "Unsupported Algorithms"
	case CategoryCanceled:
		return "Canceled"
	case CategoryTimeout:
		return "Timeouts"
	default:
		return "Other Errors"
	}
}
