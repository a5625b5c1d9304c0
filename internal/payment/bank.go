package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"kvtogether/internal/domain"
)

// ErrMissingBankAccount indicates the bank transfer provider was configured
// without a destination account.
var ErrMissingBankAccount = errors.New("payment: bank account is required")

// BankConfig is the destination account shared by all bank transfer donations.
type BankConfig struct {
	Code          string
	Name          string
	AccountNumber string
	AccountName   string
	QRBaseURL     string
}

// BankTransfer issues manual transfer instructions. No gateway is involved:
// the supporter transfers directly to the platform account and quotes the
// donation reference in the note.
type BankTransfer struct {
	cfg BankConfig
}

func NewBankTransfer(cfg BankConfig) (*BankTransfer, error) {
	if cfg.AccountNumber == "" || cfg.AccountName == "" {
		return nil, ErrMissingBankAccount
	}
	if cfg.QRBaseURL == "" {
		cfg.QRBaseURL = "https://img.vietqr.io/image"
	}
	return &BankTransfer{cfg: cfg}, nil
}

// Begin builds the payment instruction for one donation. The QR image encodes
// the same account, amount and note, so a supporter whose banking app cannot
// scan it can still transfer from the text fields.
func (b *BankTransfer) Begin(_ context.Context, req Request) (*Outcome, error) {
	d := req.Donation
	note := TransferNote(d.Reference, req.Campaign.Slug)
	inst := &domain.PaymentInstruction{
		BankCode:        b.cfg.Code,
		BankName:        b.cfg.Name,
		AccountNumber:   b.cfg.AccountNumber,
		AccountName:     b.cfg.AccountName,
		Amount:          d.Amount,
		TransferNote:    note,
		QRCodeURL:       b.qrURL(d.Amount, note),
		TransactionCode: d.Reference,
	}
	return &Outcome{Instructions: inst}, nil
}

func (b *BankTransfer) qrURL(amount int64, note string) string {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("addInfo", note)
	q.Set("accountName", b.cfg.AccountName)
	return fmt.Sprintf("%s/%s-%s-compact2.png?%s", b.cfg.QRBaseURL, b.cfg.Code, b.cfg.AccountNumber, q.Encode())
}

// TransferNote is the canonical note format: the reference first so bank
// statements sort donations together, then the campaign slug for operators.
func TransferNote(reference, slug string) string {
	return fmt.Sprintf("%s ung ho %s", reference, slug)
}
