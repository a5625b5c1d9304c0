package domain

// PaymentInstruction carries everything a supporter needs to complete a
// manual bank transfer for one donation. Amount always equals the donation
// amount; the transfer note embeds the donation reference so incoming
// transfers to the shared account can be disambiguated.
type PaymentInstruction struct {
	BankCode        string
	BankName        string
	AccountNumber   string
	AccountName     string
	Amount          int64
	TransferNote    string
	QRCodeURL       string
	TransactionCode string
}
