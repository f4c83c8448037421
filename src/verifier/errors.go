package verifier

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a provider reply that did not match the
// strict result shape. On the text path the gateway converts it into the
// neutral fallback; on the vision path it becomes a DetectionFailedError.
var ErrMalformedResponse = errors.New("malformed provider response")

// ValidationError rejects bad input before any provider call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DetectionFailedError means media could not be analyzed. Unlike the text
// path there is no safe default authenticity score, so this surfaces to
// the caller instead of degrading silently.
type DetectionFailedError struct {
	Err error
}

func (e *DetectionFailedError) Error() string {
	return fmt.Sprintf("deepfake detection failed: %v", e.Err)
}

func (e *DetectionFailedError) Unwrap() error { return e.Err }
