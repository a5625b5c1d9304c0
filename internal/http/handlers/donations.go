package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"kvtogether/internal/domain"
	"kvtogether/internal/middleware"
	"kvtogether/internal/payment"
)

type donationRequest struct {
	CampaignID    string `json:"campaign_id"`
	Amount        int64  `json:"amount"`
	Message       string `json:"message"`
	PaymentMethod string `json:"payment_method"`
	Anonymous     bool   `json:"anonymous"`
}

type paymentInfo struct {
	BankCode        string `json:"bank_code"`
	BankName        string `json:"bank_name"`
	AccountNumber   string `json:"account_number"`
	AccountName     string `json:"account_name"`
	Amount          int64  `json:"amount"`
	Message         string `json:"message"`
	QRURL           string `json:"qr_url"`
	TransactionCode string `json:"transaction_code"`
}

// DonationsCreate accepts a proposed donation, re-validates it against the
// campaign, persists it as pending and opens the provider-specific payment.
// The response carries either payment_info (bank transfer) or payment_url
// (hosted checkout), never both.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in to donate")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(domain.ErrUnsupportedMethod, locale))
		return
	}

	// Resolve the provider before anything is persisted: a method the
	// deployment has no gateway for must not leave a pending row behind.
	provider, err := a.Providers.ForMethod(method)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(domain.ErrUnsupportedMethod, locale))
		return
	}

	campaign, err := a.Campaigns.GetByID(r.Context(), req.CampaignID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("campaign_id", req.CampaignID).Msg("load campaign")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return
	}

	if err := domain.ValidateDonation(campaign, req.Amount, method, req.Message); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(err, locale))
		return
	}

	clientIP := middleware.ClientIP(r)
	donation := &domain.Donation{
		CampaignID:   campaign.ID,
		UserID:       &userID,
		Amount:       req.Amount,
		Message:      req.Message,
		Method:       method,
		Anonymous:    req.Anonymous,
		DonorCountry: a.donorCountry(clientIP),
		Reference:    payment.NewReferenceCode(),
	}

	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
		return
	}

	outcome, err := provider.Begin(r.Context(), payment.Request{
		Campaign: campaign,
		Donation: donation,
		ClientIP: clientIP,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", donation.ID).Str("method", string(method)).Msg("open payment")
		if ferr := a.Donations.MarkFailed(r.Context(), donation.ID); ferr != nil {
			a.Logger.Error().Err(ferr).Str("donation_id", donation.ID).Msg("mark donation failed")
		}
		a.error(w, http.StatusBadGateway, "provider_failure", "payment provider is unavailable, please try again")
		return
	}

	resp := map[string]any{
		"donation_id": donation.ID,
		"status":      string(domain.DonationPending),
	}
	switch {
	case outcome.Instructions != nil:
		inst := outcome.Instructions
		resp["payment_info"] = paymentInfo{
			BankCode:        inst.BankCode,
			BankName:        inst.BankName,
			AccountNumber:   inst.AccountNumber,
			AccountName:     inst.AccountName,
			Amount:          inst.Amount,
			Message:         inst.TransferNote,
			QRURL:           inst.QRCodeURL,
			TransactionCode: inst.TransactionCode,
		}
	case outcome.RedirectURL != "":
		resp["payment_url"] = outcome.RedirectURL
	default:
		a.Logger.Error().Str("donation_id", donation.ID).Msg("provider returned empty outcome")
		a.error(w, http.StatusInternalServerError, "internal", "failed to open payment")
		return
	}

	a.json(w, http.StatusCreated, resp)
}

// DonationsVerify settles a pending bank transfer donation after the finance
// team matched the incoming transfer. Repeating the call is harmless: the
// campaign amount moves at most once.
func (a *App) DonationsVerify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	donation, err := a.Donations.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", id).Msg("load donation")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation")
		return
	}

	applied, err := a.Donations.Confirm(r.Context(), id)
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", id).Msg("confirm donation")
		a.error(w, http.StatusInternalServerError, "internal", "failed to confirm donation")
		return
	}

	status := donation.Status
	if applied {
		status = domain.DonationConfirmed
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":      id,
		"status":  string(status),
		"applied": applied,
	})
}

func (a *App) donorCountry(ip string) string {
	if a.Geo == nil {
		return ""
	}
	country, err := a.Geo.CountryCode(ip)
	if err != nil {
		return ""
	}
	return country
}

// validationMessage renders a rejection for the negotiated locale. Vietnamese
// is the platform default; English covers everything the matcher maps there.
func validationMessage(err error, locale language.Tag) string {
	if base, _ := locale.Base(); base.String() == "en" {
		switch {
		case errors.Is(err, domain.ErrBelowMinimum):
			return fmt.Sprintf("minimum donation is %s", payment.FormatVND(domain.MinDonationAmount))
		case errors.Is(err, domain.ErrMessageTooLong):
			return fmt.Sprintf("message must be at most %d characters", domain.MaxMessageLength)
		case errors.Is(err, domain.ErrCampaignCompleted):
			return "this campaign has already reached its goal, thank you! please browse other campaigns"
		case errors.Is(err, domain.ErrCampaignClosed):
			return "this campaign is not accepting donations"
		case errors.Is(err, domain.ErrUnsupportedMethod):
			return "unsupported payment method"
		}
		return "invalid donation"
	}
	switch {
	case errors.Is(err, domain.ErrBelowMinimum):
		return fmt.Sprintf("số tiền ủng hộ tối thiểu là %s", payment.FormatVND(domain.MinDonationAmount))
	case errors.Is(err, domain.ErrMessageTooLong):
		return fmt.Sprintf("lời nhắn tối đa %d ký tự", domain.MaxMessageLength)
	case errors.Is(err, domain.ErrCampaignCompleted):
		return "chiến dịch đã đạt mục tiêu, cảm ơn bạn! hãy ủng hộ một chiến dịch khác"
	case errors.Is(err, domain.ErrCampaignClosed):
		return "chiến dịch hiện không nhận ủng hộ"
	case errors.Is(err, domain.ErrUnsupportedMethod):
		return "phương thức thanh toán không được hỗ trợ"
	}
	return "khoản ủng hộ không hợp lệ"
}
