package domain

import "time"

// CampaignStatus is the lifecycle state of a fundraising campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignPending   CampaignStatus = "pending"
	CampaignActive    CampaignStatus = "active"
	CampaignRejected  CampaignStatus = "rejected"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Campaign represents a fundraising campaign aggregate. Amounts are VND.
type Campaign struct {
	ID            string
	Slug          string
	Title         string
	Status        CampaignStatus
	TargetAmount  int64
	CurrentAmount int64
	DonationCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Completed reports whether the campaign has finished raising, either by
// explicit status or by having reached its target.
func (c *Campaign) Completed() bool {
	return c.Status == CampaignCompleted || c.CurrentAmount >= c.TargetAmount
}

// AcceptingDonations reports whether a new donation may be opened against the
// campaign. A single donation may overshoot the remaining need; only campaigns
// that already reached the target stop accepting.
func (c *Campaign) AcceptingDonations() bool {
	return c.Status == CampaignActive && c.CurrentAmount < c.TargetAmount
}

// ProgressPercent returns the funding progress as a percentage capped at 100.
func (c *Campaign) ProgressPercent() float64 {
	if c.TargetAmount <= 0 {
		return 0
	}
	pct := float64(c.CurrentAmount) / float64(c.TargetAmount) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
