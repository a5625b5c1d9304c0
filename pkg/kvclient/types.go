// Package kvclient is the client SDK for the KV Together donation API. It
// validates a proposed donation before any network call, submits it, and
// drives the bank-transfer confirmation flow.
package kvclient

import "time"

// Campaign is the campaign aggregate as served by the API.
type Campaign struct {
	ID                 string          `json:"id"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	Status             string          `json:"status"`
	TargetAmount       int64           `json:"target_amount"`
	CurrentAmount      int64           `json:"current_amount"`
	DonationCount      int             `json:"donation_count"`
	ProgressPercentage float64         `json:"progress_percentage"`
	Donations          []DonationEntry `json:"donations"`
}

// DonationEntry is one confirmed donation in a campaign's recent list.
type DonationEntry struct {
	Amount       int64     `json:"amount"`
	Message      string    `json:"message"`
	Anonymous    bool      `json:"anonymous"`
	DonorCountry string    `json:"donor_country"`
	CreatedAt    time.Time `json:"created_at"`
}

// Intent is a validated, normalized donation proposal. It has no identity
// until the backend accepts it.
type Intent struct {
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message"`
	Method     string `json:"payment_method"`
	Anonymous  bool   `json:"anonymous"`
}

// PaymentInstructions are the manual bank transfer details for one donation.
type PaymentInstructions struct {
	BankCode        string `json:"bank_code"`
	BankName        string `json:"bank_name"`
	AccountNumber   string `json:"account_number"`
	AccountName     string `json:"account_name"`
	Amount          int64  `json:"amount"`
	Message         string `json:"message"`
	QRURL           string `json:"qr_url"`
	TransactionCode string `json:"transaction_code"`
}

// ResultKind discriminates the two submit outcomes.
type ResultKind int

const (
	// ResultInstructions: the response carried bank transfer instructions.
	ResultInstructions ResultKind = iota + 1
	// ResultRedirect: the response carried a hosted-checkout URL.
	ResultRedirect
)

// SubmitResult is the tagged union returned by SubmitDonation. Exactly one of
// Instructions or RedirectURL is populated, matching Kind.
type SubmitResult struct {
	Kind         ResultKind
	DonationID   string
	Instructions *PaymentInstructions
	RedirectURL  string
}
