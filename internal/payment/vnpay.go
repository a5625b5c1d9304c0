package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ErrMissingVNPayCredentials indicates the provider was configured without
// its terminal code or hash secret.
var ErrMissingVNPayCredentials = errors.New("payment: vnpay credentials are required")

// VNPayConfig holds the merchant settings for the VNPay hosted checkout.
type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
}

// VNPay builds signed redirect URLs for the VNPay payment page and verifies
// IPN callbacks. The checkout itself is hosted by the gateway; no
// server-to-server call is needed to open a payment.
type VNPay struct {
	cfg VNPayConfig
	now func() time.Time
}

func NewVNPay(cfg VNPayConfig) (*VNPay, error) {
	if cfg.TmnCode == "" || cfg.HashSecret == "" {
		return nil, ErrMissingVNPayCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	}
	return &VNPay{cfg: cfg, now: time.Now}, nil
}

// WithClock overrides the timestamp source. Tests pin vnp_CreateDate with it.
func (v *VNPay) WithClock(now func() time.Time) *VNPay {
	v.now = now
	return v
}

// Begin returns the hosted-checkout redirect URL for one donation.
func (v *VNPay) Begin(_ context.Context, req Request) (*Outcome, error) {
	d := req.Donation
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", v.cfg.TmnCode)
	// VNPay expects the amount multiplied by 100.
	params.Set("vnp_Amount", fmt.Sprintf("%d", d.Amount*100))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", d.Reference)
	params.Set("vnp_OrderInfo", TransferNote(d.Reference, req.Campaign.Slug))
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", v.cfg.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", v.now().Format("20060102150405"))

	signed := signQuery(params, v.cfg.HashSecret)
	return &Outcome{RedirectURL: v.cfg.BaseURL + "?" + signed}, nil
}

// VerifyIPN checks the vnp_SecureHash of a callback against the shared secret.
func (v *VNPay) VerifyIPN(values url.Values) bool {
	got := values.Get("vnp_SecureHash")
	if got == "" {
		return false
	}
	params := url.Values{}
	for key, vals := range values {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" || len(vals) == 0 {
			continue
		}
		params.Set(key, vals[0])
	}
	want := hmacSHA512(v.cfg.HashSecret, canonicalQuery(params))
	return hmac.Equal([]byte(strings.ToLower(got)), []byte(want))
}

// canonicalQuery encodes parameters sorted by key, the form VNPay signs.
func canonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params.Get(k)))
	}
	return strings.Join(parts, "&")
}

func signQuery(params url.Values, secret string) string {
	query := canonicalQuery(params)
	return query + "&vnp_SecureHash=" + hmacSHA512(secret, query)
}

func hmacSHA512(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
