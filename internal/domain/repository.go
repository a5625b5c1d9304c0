package domain

import "context"

// CampaignRepository defines read access for campaigns.
type CampaignRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Campaign, error)
	GetByID(ctx context.Context, id string) (*Campaign, error)
}

// DonationRepository handles donation persistence and settlement transitions.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	GetByReference(ctx context.Context, reference string) (*Donation, error)
	// Confirm moves a pending donation to confirmed and applies the campaign
	// amount/count increment in the same statement. It reports whether the
	// transition was applied; confirming an already settled donation is a
	// no-op with applied=false.
	Confirm(ctx context.Context, id string) (applied bool, err error)
	MarkFailed(ctx context.Context, id string) error
	ListRecentByCampaign(ctx context.Context, campaignID string, limit int) ([]Donation, error)
}

// StatsRepository reads the reporting aggregates maintained on confirmation.
type StatsRepository interface {
	Summary(ctx context.Context) (*StatsSummary, error)
}
