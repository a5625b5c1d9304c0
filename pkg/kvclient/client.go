package kvclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingBaseURL indicates the client was configured without an API address.
var ErrMissingBaseURL = errors.New("kvclient: base url is required")

// Options configures the API client.
type Options struct {
	BaseURL        string
	Session        *Session
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the donation API. It issues exactly one
// request per method call and never mutates campaign state locally; the
// authoritative amounts live server-side. Suppressing duplicate submits from
// rapid clicking is the caller's in-flight guard, not the client's.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	session := opts.Session
	if session == nil {
		session = NewSession("", time.Time{})
	}
	return &Client{
		baseURL:    baseURL,
		session:    session,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

type submitResponse struct {
	DonationID  string               `json:"donation_id"`
	Status      string               `json:"status"`
	PaymentInfo *PaymentInstructions `json:"payment_info"`
	PaymentURL  string               `json:"payment_url"`
}

// SubmitDonation posts a validated Intent and classifies the response into
// the SubmitResult tagged union. All failures are terminal for this attempt;
// there is no automatic retry.
func (c *Client) SubmitDonation(ctx context.Context, intent *Intent) (*SubmitResult, error) {
	payload, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("kvclient: encode intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/donations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("kvclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.session.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnknownFailureError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.submitFailure(resp)
	}

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, ErrMalformedResponse
	}

	result := &SubmitResult{DonationID: decoded.DonationID}
	switch {
	case decoded.PaymentInfo != nil && decoded.PaymentURL != "":
		return nil, ErrMalformedResponse
	case decoded.PaymentInfo != nil:
		result.Kind = ResultInstructions
		result.Instructions = decoded.PaymentInfo
	case decoded.PaymentURL != "":
		result.Kind = ResultRedirect
		result.RedirectURL = decoded.PaymentURL
	default:
		return nil, ErrMalformedResponse
	}

	c.logger.Debug().Str("donation_id", result.DonationID).Int("kind", int(result.Kind)).Msg("donation submitted")
	return result, nil
}

func (c *Client) submitFailure(resp *http.Response) error {
	msg := errorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthenticationRequired
	case http.StatusBadRequest:
		return &ValidationError{Message: msg}
	case http.StatusForbidden:
		return ErrForbidden
	}
	return &UnknownFailureError{StatusCode: resp.StatusCode, Message: msg}
}

// Campaign fetches the campaign aggregate by slug. The flow calls it after a
// confirmation so displayed totals pick up any backend-side reconciliation;
// no read-after-write guarantee is assumed.
func (c *Client) Campaign(ctx context.Context, slug string) (*Campaign, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/campaigns/"+slug, nil)
	if err != nil {
		return nil, fmt.Errorf("kvclient: build request: %w", err)
	}
	c.session.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnknownFailureError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCampaignNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UnknownFailureError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var campaign Campaign
	if err := json.NewDecoder(resp.Body).Decode(&campaign); err != nil {
		return nil, fmt.Errorf("kvclient: decode campaign: %w", err)
	}
	return &campaign, nil
}

// PollCampaign re-fetches the campaign on a fixed cadence and hands each
// snapshot to fn until the context is done. Fetch errors are logged and the
// polling continues; polling is a display refresh, not a consistency tool.
func (c *Client) PollCampaign(ctx context.Context, slug string, interval time.Duration, fn func(*Campaign)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			campaign, err := c.Campaign(ctx, slug)
			if err != nil {
				c.logger.Warn().Err(err).Str("slug", slug).Msg("campaign poll failed")
				continue
			}
			fn(campaign)
		}
	}
}

// errorMessage extracts a human-readable message from a failure body. The
// API writes {"error":{"code","message"}}; a bare {"message"} and plain text
// are tolerated.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
