package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kvtogether/internal/domain"
	"kvtogether/internal/payment"
)

// vnpayReply follows the gateway's IPN acknowledgment convention.
type vnpayReply struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// VNPayIPN handles the gateway's server-to-server payment notification.
// Signature first, then order lookup, then amount check; settlement reuses
// the idempotent confirm so replayed notifications cannot double-count.
func (a *App) VNPayIPN(w http.ResponseWriter, r *http.Request) {
	if a.VNPay == nil {
		a.error(w, http.StatusNotFound, "not_found", "vnpay is not configured")
		return
	}

	values := r.URL.Query()
	if !a.VNPay.VerifyIPN(values) {
		a.json(w, http.StatusOK, vnpayReply{RspCode: "97", Message: "Invalid signature"})
		return
	}

	reference := values.Get("vnp_TxnRef")
	donation, err := a.Donations.GetByReference(r.Context(), reference)
	if errors.Is(err, domain.ErrNotFound) {
		a.json(w, http.StatusOK, vnpayReply{RspCode: "01", Message: "Order not found"})
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("reference", reference).Msg("vnpay ipn lookup")
		a.json(w, http.StatusOK, vnpayReply{RspCode: "99", Message: "Unknown error"})
		return
	}

	// vnp_Amount is the donation amount multiplied by 100.
	amount, err := strconv.ParseInt(values.Get("vnp_Amount"), 10, 64)
	if err != nil || amount != donation.Amount*100 {
		a.json(w, http.StatusOK, vnpayReply{RspCode: "04", Message: "Invalid amount"})
		return
	}

	if values.Get("vnp_ResponseCode") != "00" {
		if err := a.Donations.MarkFailed(r.Context(), donation.ID); err != nil {
			a.Logger.Error().Err(err).Str("donation_id", donation.ID).Msg("vnpay ipn mark failed")
		}
		a.json(w, http.StatusOK, vnpayReply{RspCode: "00", Message: "Confirm Success"})
		return
	}

	applied, err := a.Donations.Confirm(r.Context(), donation.ID)
	if err != nil {
		a.Logger.Error().Err(err).Str("donation_id", donation.ID).Msg("vnpay ipn confirm")
		a.json(w, http.StatusOK, vnpayReply{RspCode: "99", Message: "Unknown error"})
		return
	}
	if !applied {
		a.json(w, http.StatusOK, vnpayReply{RspCode: "02", Message: "Order already confirmed"})
		return
	}
	a.json(w, http.StatusOK, vnpayReply{RspCode: "00", Message: "Confirm Success"})
}

// MomoIPN handles MoMo's payment notification callback.
func (a *App) MomoIPN(w http.ResponseWriter, r *http.Request) {
	if a.Momo == nil {
		a.error(w, http.StatusNotFound, "not_found", "momo is not configured")
		return
	}

	var p payment.MomoIPN
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	if !a.Momo.VerifyIPN(p) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid signature")
		return
	}

	donation, err := a.Donations.GetByReference(r.Context(), p.OrderID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("reference", p.OrderID).Msg("momo ipn lookup")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation")
		return
	}

	if p.ResultCode != 0 {
		if err := a.Donations.MarkFailed(r.Context(), donation.ID); err != nil {
			a.Logger.Error().Err(err).Str("donation_id", donation.ID).Msg("momo ipn mark failed")
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if _, err := a.Donations.Confirm(r.Context(), donation.ID); err != nil {
		a.Logger.Error().Err(err).Str("donation_id", donation.ID).Msg("momo ipn confirm")
		a.error(w, http.StatusInternalServerError, "internal", "failed to confirm donation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
