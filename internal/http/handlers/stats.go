package handlers

import (
	"net/http"
	"time"
)

type dailyStatEntry struct {
	Day       string `json:"day"`
	Donations int    `json:"donations"`
	Amount    int64  `json:"amount"`
}

// StatsSummary returns confirmed donation totals and the recent daily series.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Stats.Summary(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("load stats summary")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}

	daily := make([]dailyStatEntry, 0, len(summary.Daily))
	for _, d := range summary.Daily {
		daily = append(daily, dailyStatEntry{
			Day:       d.Day.Format(time.DateOnly),
			Donations: d.Donations,
			Amount:    d.Amount,
		})
	}

	a.json(w, http.StatusOK, map[string]any{
		"total_donations": summary.TotalDonations,
		"total_amount":    summary.TotalAmount,
		"daily":           daily,
	})
}
