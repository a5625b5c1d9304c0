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

// DonationRepositoryPG implements DonationRepository on PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a pending donation. The id and created_at come back from the
// database so callers see the authoritative values.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	userID := ""
	if d.UserID != nil {
		userID = *d.UserID
	}
	err := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		d.CampaignID, userID, d.Amount, d.Message, string(d.Method),
		d.Anonymous, d.DonorCountry, d.Reference,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	d.Status = domain.DonationPending
	return nil
}

func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return r.get(ctx, sqlinline.QGetDonationByID, id)
}

func (r *DonationRepositoryPG) GetByReference(ctx context.Context, reference string) (*domain.Donation, error) {
	return r.get(ctx, sqlinline.QGetDonationByReference, reference)
}

func (r *DonationRepositoryPG) get(ctx context.Context, query, arg string) (*domain.Donation, error) {
	var d domain.Donation
	err := r.sql.QueryRow(ctx, query, arg).Scan(
		&d.ID, &d.CampaignID, &d.UserID, &d.Amount, &d.Message, &d.Method,
		&d.Anonymous, &d.DonorCountry, &d.Reference, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return &d, nil
}

// Confirm settles a pending donation. The statement updates the donation, the
// campaign aggregate and the daily counters together, guarded on
// status='pending', so the campaign amount is applied at most once no matter
// how many times a verify or IPN repeats.
func (r *DonationRepositoryPG) Confirm(ctx context.Context, id string) (bool, error) {
	var settled int
	if err := r.sql.QueryRow(ctx, sqlinline.QConfirmDonation, id).Scan(&settled); err != nil {
		return false, fmt.Errorf("confirm donation: %w", err)
	}
	return settled > 0, nil
}

func (r *DonationRepositoryPG) MarkFailed(ctx context.Context, id string) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QMarkDonationFailed, id); err != nil {
		return fmt.Errorf("mark donation failed: %w", err)
	}
	return nil
}

func (r *DonationRepositoryPG) ListRecentByCampaign(ctx context.Context, campaignID string, limit int) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaignDonations, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.UserID, &d.Amount, &d.Message, &d.Method,
			&d.Anonymous, &d.DonorCountry, &d.Reference, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
