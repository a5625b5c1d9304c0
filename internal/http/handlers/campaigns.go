package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kvtogether/internal/domain"
)

const recentDonationsLimit = 10

type donationEntry struct {
	Amount       int64     `json:"amount"`
	Message      string    `json:"message"`
	Anonymous    bool      `json:"anonymous"`
	DonorCountry string    `json:"donor_country,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type campaignResponse struct {
	ID                 string          `json:"id"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	Status             string          `json:"status"`
	TargetAmount       int64           `json:"target_amount"`
	CurrentAmount      int64           `json:"current_amount"`
	DonationCount      int             `json:"donation_count"`
	ProgressPercentage float64         `json:"progress_percentage"`
	Donations          []donationEntry `json:"donations"`
}

// CampaignsGet returns the campaign aggregate for a slug, with its most
// recent confirmed donations.
func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := a.Campaigns.GetBySlug(r.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("slug", slug).Msg("load campaign")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return
	}

	recent, err := a.Donations.ListRecentByCampaign(r.Context(), campaign.ID, recentDonationsLimit)
	if err != nil {
		a.Logger.Error().Err(err).Str("campaign_id", campaign.ID).Msg("load recent donations")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	entries := make([]donationEntry, 0, len(recent))
	for _, d := range recent {
		entry := donationEntry{
			Amount:       d.Amount,
			Message:      d.Message,
			Anonymous:    d.Anonymous,
			DonorCountry: d.DonorCountry,
			CreatedAt:    d.CreatedAt,
		}
		entries = append(entries, entry)
	}

	a.json(w, http.StatusOK, campaignResponse{
		ID:                 campaign.ID,
		Slug:               campaign.Slug,
		Title:              campaign.Title,
		Status:             string(campaign.Status),
		TargetAmount:       campaign.TargetAmount,
		CurrentAmount:      campaign.CurrentAmount,
		DonationCount:      campaign.DonationCount,
		ProgressPercentage: campaign.ProgressPercent(),
		Donations:          entries,
	})
}
