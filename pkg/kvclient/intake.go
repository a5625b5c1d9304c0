package kvclient

import (
	"strconv"
	"strings"
)

// MinimumAmount is the smallest accepted donation, in VND.
const MinimumAmount int64 = 20_000

// Payment method values accepted by the API.
const (
	MethodBankTransfer = "bank_transfer"
	MethodMomo         = "momo"
	MethodVNPay        = "vnpay"
)

// ValidateIntake checks a proposed donation against the campaign snapshot
// before any network round-trip and returns the normalized Intent. It is a
// pure function; surfacing error messages is the caller's job.
//
// The raw amount may contain formatting characters ("100.000", "100,000");
// every non-digit rune is stripped and the remaining digit string is parsed.
// Amounts larger than the campaign's remaining need are accepted on purpose:
// a final donation may overshoot the target.
func ValidateIntake(rawAmount, method string, campaign Campaign) (*Intent, error) {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	if amount < MinimumAmount {
		return nil, &BelowMinimumError{Minimum: MinimumAmount}
	}
	if completed, accepting := campaignState(campaign); !accepting {
		return nil, &CampaignClosedError{Completed: completed}
	}
	switch method {
	case MethodBankTransfer, MethodMomo, MethodVNPay:
	default:
		return nil, ErrUnsupportedMethod
	}
	return &Intent{
		CampaignID: campaign.ID,
		Amount:     amount,
		Method:     method,
	}, nil
}

// parseAmount strips every non-digit rune and parses what remains, so
// "100.000", "100,000" and "100000" all mean one hundred thousand.
func parseAmount(raw string) (int64, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, ErrInvalidAmountFormat
	}
	amount, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, ErrInvalidAmountFormat
	}
	return amount, nil
}

func campaignState(c Campaign) (completed, accepting bool) {
	completed = c.Status == "completed" || c.CurrentAmount >= c.TargetAmount
	accepting = c.Status == "active" && c.CurrentAmount < c.TargetAmount
	return completed, accepting
}
