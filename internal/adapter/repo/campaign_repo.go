package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kvtogether/internal/domain"
	"kvtogether/internal/infra"
	"kvtogether/internal/sqlinline"
)

// CampaignRepositoryPG implements CampaignRepository on PostgreSQL.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

func (r *CampaignRepositoryPG) GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error) {
	return r.get(ctx, sqlinline.QGetCampaignBySlug, slug)
}

func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.get(ctx, sqlinline.QGetCampaignByID, id)
}

func (r *CampaignRepositoryPG) get(ctx context.Context, query, arg string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.sql.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Slug, &c.Title, &c.Status,
		&c.TargetAmount, &c.CurrentAmount, &c.DonationCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}
