package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBelowMinimum      = errors.New("amount below minimum")
	ErrMessageTooLong    = errors.New("message too long")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrCampaignClosed    = errors.New("campaign not accepting donations")
	ErrCampaignCompleted = errors.New("campaign already completed")
	ErrProviderFailure   = errors.New("payment provider failure")
)
