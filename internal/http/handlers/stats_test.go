package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kvtogether/internal/domain"
)

func TestStatsSummary(t *testing.T) {
	app := testApp(&fakeCampaignRepo{}, newFakeDonationRepo(), bankRegistry())
	app.Stats = &fakeStatsRepo{summary: domain.StatsSummary{
		TotalDonations: 42,
		TotalAmount:    3_500_000,
		Daily: []domain.DailyStat{
			{Day: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Donations: 3, Amount: 300_000},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/v1/stats/summary", nil)
	rr := httptest.NewRecorder()
	app.StatsSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		TotalDonations int   `json:"total_donations"`
		TotalAmount    int64 `json:"total_amount"`
		Daily          []struct {
			Day       string `json:"day"`
			Donations int    `json:"donations"`
			Amount    int64  `json:"amount"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalDonations != 42 || resp.TotalAmount != 3_500_000 {
		t.Fatalf("totals: %+v", resp)
	}
	if len(resp.Daily) != 1 || resp.Daily[0].Day != "2025-06-01" || resp.Daily[0].Amount != 300_000 {
		t.Fatalf("daily: %+v", resp.Daily)
	}
}
