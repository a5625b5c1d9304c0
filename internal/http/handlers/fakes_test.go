package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"kvtogether/internal/domain"
	"kvtogether/internal/payment"
)

type fakeCampaignRepo struct {
	campaigns []*domain.Campaign
}

func (f *fakeCampaignRepo) GetBySlug(_ context.Context, slug string) (*domain.Campaign, error) {
	for _, c := range f.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	for _, c := range f.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeDonationRepo struct {
	created      []*domain.Donation
	donations    map[string]*domain.Donation
	confirmCalls int
	failed       []string
	recent       []domain.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[string]*domain.Donation)}
}

func (f *fakeDonationRepo) Create(_ context.Context, d *domain.Donation) error {
	d.ID = "d-" + d.Reference
	d.Status = domain.DonationPending
	f.created = append(f.created, d)
	f.donations[d.ID] = d
	return nil
}

func (f *fakeDonationRepo) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	if d, ok := f.donations[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonationRepo) GetByReference(_ context.Context, reference string) (*domain.Donation, error) {
	for _, d := range f.donations {
		if d.Reference == reference {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonationRepo) Confirm(_ context.Context, id string) (bool, error) {
	f.confirmCalls++
	d, ok := f.donations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if d.Status != domain.DonationPending {
		return false, nil
	}
	d.Status = domain.DonationConfirmed
	return true, nil
}

func (f *fakeDonationRepo) MarkFailed(_ context.Context, id string) error {
	f.failed = append(f.failed, id)
	if d, ok := f.donations[id]; ok && d.Status == domain.DonationPending {
		d.Status = domain.DonationFailed
	}
	return nil
}

func (f *fakeDonationRepo) ListRecentByCampaign(_ context.Context, _ string, _ int) ([]domain.Donation, error) {
	return f.recent, nil
}

type fakeStatsRepo struct {
	summary domain.StatsSummary
}

func (f *fakeStatsRepo) Summary(_ context.Context) (*domain.StatsSummary, error) {
	return &f.summary, nil
}

type fakeProvider struct {
	outcome *payment.Outcome
	err     error
}

func (f *fakeProvider) Begin(_ context.Context, _ payment.Request) (*payment.Outcome, error) {
	return f.outcome, f.err
}

func testApp(campaigns *fakeCampaignRepo, donations *fakeDonationRepo, providers *payment.Registry) *App {
	return &App{
		Campaigns: campaigns,
		Donations: donations,
		Stats:     &fakeStatsRepo{},
		Providers: providers,
		Logger:    zerolog.Nop(),
	}
}
