package domain

import "time"

// MinDonationAmount is the smallest accepted contribution, in VND.
const MinDonationAmount int64 = 20_000

// MaxMessageLength bounds the optional supporter message.
const MaxMessageLength = 500

// PaymentMethod identifies how a donation is paid.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMomo         PaymentMethod = "momo"
	MethodVNPay        PaymentMethod = "vnpay"
)

// ParsePaymentMethod validates a wire value against the closed method set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodBankTransfer, MethodMomo, MethodVNPay:
		return PaymentMethod(s), nil
	}
	return "", ErrUnsupportedMethod
}

// DonationStatus is the settlement state of an accepted donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationFailed    DonationStatus = "failed"
)

// Donation represents an accepted supporter contribution.
type Donation struct {
	ID           string
	CampaignID   string
	UserID       *string
	Amount       int64
	Message      string
	Method       PaymentMethod
	Anonymous    bool
	DonorCountry string
	Reference    string
	Status       DonationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateDonation applies the acceptance rules for a proposed donation
// against the campaign it targets. The client performs the same checks before
// submitting; the server remains the authority.
func ValidateDonation(c *Campaign, amount int64, method PaymentMethod, message string) error {
	if amount < MinDonationAmount {
		return ErrBelowMinimum
	}
	if len([]rune(message)) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return err
	}
	if !c.AcceptingDonations() {
		if c.Completed() {
			return ErrCampaignCompleted
		}
		return ErrCampaignClosed
	}
	return nil
}
