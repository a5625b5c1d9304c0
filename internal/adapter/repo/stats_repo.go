package repo

import (
	"context"
	"fmt"

	"kvtogether/internal/domain"
	"kvtogether/internal/infra"
	"kvtogether/internal/sqlinline"
)

const dailyStatsWindow = 30

// StatsRepositoryPG reads the reporting aggregates on PostgreSQL.
type StatsRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewStatsRepository(sql infra.SQLExecutor) *StatsRepositoryPG {
	return &StatsRepositoryPG{sql: sql}
}

func (r *StatsRepositoryPG) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	var summary domain.StatsSummary
	if err := r.sql.QueryRow(ctx, sqlinline.QStatsTotals).Scan(&summary.TotalDonations, &summary.TotalAmount); err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	rows, err := r.sql.Query(ctx, sqlinline.QStatsDaily, dailyStatsWindow)
	if err != nil {
		return nil, fmt.Errorf("stats daily: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day domain.DailyStat
		if err := rows.Scan(&day.Day, &day.Donations, &day.Amount); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		summary.Daily = append(summary.Daily, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &summary, nil
}
