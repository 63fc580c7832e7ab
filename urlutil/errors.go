package urlutil

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedURL is matched by every *MalformedURLError.
	ErrMalformedURL = errors.New("malformed URL")
	// ErrInvalidArgument is matched by every *InvalidArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedAlgorithm is matched by every *UnsupportedAlgorithmError.
	ErrUnsupportedAlgorithm = errors.New("unsupported fingerprint algorithm")
)

// MalformedURLError reports a string that cannot be parsed as a URL.
type MalformedURLError struct {
	URL    string // The raw input
	Reason string // Short description of what is wrong
	Err    error  // Underlying parser error, if any
}

func (e *MalformedURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed URL %q: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed URL %q: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying parser error.
func (e *MalformedURLError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedURL.
func (e *MalformedURLError) Is(target error) bool { return target == ErrMalformedURL }

// InvalidArgumentError reports a call made with arguments it cannot accept.
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// UnsupportedAlgorithmError reports a digest name with no implementation.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported fingerprint algorithm %q", e.Name)
}

// Is reports whether target is ErrUnsupportedAlgorithm.
func (e *UnsupportedAlgorithmError) Is(target error) bool { return target == ErrUnsupportedAlgorithm }

func malformed(raw, reason string, err error) error {
	return &MalformedURLError{URL: raw, Reason: reason, Err: err}
}
