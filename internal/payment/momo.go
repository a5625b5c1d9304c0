package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kvtogether/internal/domain"
)

// ErrMissingMomoCredentials indicates the provider was configured without
// partner credentials.
var ErrMissingMomoCredentials = errors.New("payment: momo credentials are required")

// MomoConfig holds the partner settings for the MoMo wallet gateway.
type MomoConfig struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	ReturnURL   string
	NotifyURL   string

	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Momo opens payments through the MoMo create-payment API and verifies IPN
// callbacks. Unlike VNPay, obtaining the pay URL requires a server-to-server
// call.
type Momo struct {
	cfg        MomoConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewMomo(cfg MomoConfig) (*Momo, error) {
	if cfg.PartnerCode == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrMissingMomoCredentials
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://test-payment.momo.vn"
	}
	return &Momo{cfg: cfg, httpClient: httpClient, logger: logger}, nil
}

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	PayURL     string `json:"payUrl"`
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
}

// Begin requests a pay URL from MoMo for one donation. The donation
// reference doubles as the MoMo order id so the IPN can be matched back.
func (m *Momo) Begin(ctx context.Context, req Request) (*Outcome, error) {
	d := req.Donation
	requestID := uuid.NewString()
	orderInfo := TransferNote(d.Reference, req.Campaign.Slug)

	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=captureWallet",
		m.cfg.AccessKey, d.Amount, "", m.cfg.NotifyURL, d.Reference, orderInfo,
		m.cfg.PartnerCode, m.cfg.ReturnURL, requestID,
	)

	body := momoCreateRequest{
		PartnerCode: m.cfg.PartnerCode,
		AccessKey:   m.cfg.AccessKey,
		RequestID:   requestID,
		Amount:      d.Amount,
		OrderID:     d.Reference,
		OrderInfo:   orderInfo,
		RedirectURL: m.cfg.ReturnURL,
		IpnURL:      m.cfg.NotifyURL,
		ExtraData:   "",
		RequestType: "captureWallet",
		Signature:   hmacSHA256(m.cfg.SecretKey, raw),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("momo: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint+"/v2/gateway/api/create", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("momo: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("momo: create payment: %w", err)
	}
	defer resp.Body.Close()

	var decoded momoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("momo: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || decoded.ResultCode != 0 || decoded.PayURL == "" {
		m.logger.Error().Int("result_code", decoded.ResultCode).Str("message", decoded.Message).Msg("momo create payment rejected")
		return nil, fmt.Errorf("momo: result %d (%s): %w", decoded.ResultCode, decoded.Message, domain.ErrProviderFailure)
	}

	return &Outcome{RedirectURL: decoded.PayURL}, nil
}

// MomoIPN is the callback body MoMo posts once the wallet payment settles.
type MomoIPN struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

// VerifyIPN recomputes the callback signature.
func (m *Momo) VerifyIPN(p MomoIPN) bool {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.cfg.AccessKey, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo,
		p.OrderType, p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime, p.ResultCode, p.TransID,
	)
	want := hmacSHA256(m.cfg.SecretKey, raw)
	return hmac.Equal([]byte(want), []byte(p.Signature))
}

func hmacSHA256(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
