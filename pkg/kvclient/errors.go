package kvclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmountFormat: the amount field held no digits after
	// stripping formatting characters, or overflowed.
	ErrInvalidAmountFormat = errors.New("kvclient: invalid amount format")
	// ErrUnsupportedMethod: the payment method is outside the closed set.
	// The UI offers a fixed choice, so seeing this is a programming error.
	ErrUnsupportedMethod = errors.New("kvclient: unsupported payment method")
	// ErrAuthenticationRequired: the API rejected the call with 401; the
	// caller should send the user to sign in. The donation intent is
	// discarded, not queued for retry.
	ErrAuthenticationRequired = errors.New("kvclient: authentication required")
	// ErrForbidden: the API rejected the call with 403.
	ErrForbidden = errors.New("kvclient: forbidden")
	// ErrMalformedResponse: the submit response carried neither payment
	// instructions nor a redirect URL (or both).
	ErrMalformedResponse = errors.New("kvclient: malformed submit response")
	// ErrCampaignNotFound: no campaign exists for the slug.
	ErrCampaignNotFound = errors.New("kvclient: campaign not found")
)

// BelowMinimumError rejects amounts under the platform minimum and carries
// the threshold so the caller can show it.
type BelowMinimumError struct {
	Minimum int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("kvclient: amount below minimum of %d", e.Minimum)
}

// CampaignClosedError rejects donations to a campaign that is not accepting
// them. Completed distinguishes "already reached its goal" from
// draft/pending/rejected/cancelled so the caller can word it kindly.
type CampaignClosedError struct {
	Completed bool
}

func (e *CampaignClosedError) Error() string {
	if e.Completed {
		return "kvclient: campaign already completed"
	}
	return "kvclient: campaign not accepting donations"
}

// ValidationError surfaces a server-side rejection message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "kvclient: validation rejected: " + e.Message
}

// UnknownFailureError wraps any other transport or server failure.
type UnknownFailureError struct {
	StatusCode int
	Message    string
}

func (e *UnknownFailureError) Error() string {
	return fmt.Sprintf("kvclient: request failed (%d): %s", e.StatusCode, e.Message)
}
