package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"kvtogether/internal/domain"
	"kvtogether/internal/infra/geoip"
	"kvtogether/internal/payment"
)

// App bundles the handler dependencies.
type App struct {
	Campaigns domain.CampaignRepository
	Donations domain.DonationRepository
	Stats     domain.StatsRepository
	Providers *payment.Registry

	// Gateway handles for IPN signature verification; nil when the gateway
	// is not configured.
	VNPay *payment.VNPay
	Momo  *payment.Momo

	Geo    geoip.CountryResolver
	Logger zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": msg},
	})
}
