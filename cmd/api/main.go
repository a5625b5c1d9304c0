package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kvtogether/internal/adapter/repo"
	"kvtogether/internal/domain"
	"kvtogether/internal/http/handlers"
	"kvtogether/internal/http/httpapi"
	"kvtogether/internal/infra"
	"kvtogether/internal/infra/geoip"
	"kvtogether/internal/payment"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	bank, err := payment.NewBankTransfer(payment.BankConfig{
		Code:          cfg.BankCode,
		Name:          cfg.BankName,
		AccountNumber: cfg.BankAccount,
		AccountName:   cfg.BankHolder,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("bank transfer provider")
	}

	providers := payment.NewRegistry()
	providers.Register(domain.MethodBankTransfer, bank)

	app := &handlers.App{
		Campaigns: repo.NewCampaignRepository(runner),
		Donations: repo.NewDonationRepository(runner),
		Stats:     repo.NewStatsRepository(runner),
		Providers: providers,
		Geo:       geo,
		Logger:    logger,
	}

	if cfg.VNPayTmnCode != "" {
		vnpay, err := payment.NewVNPay(payment.VNPayConfig{
			TmnCode:    cfg.VNPayTmnCode,
			HashSecret: cfg.VNPayHashSecret,
			BaseURL:    cfg.VNPayBaseURL,
			ReturnURL:  cfg.VNPayReturnURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("vnpay provider")
		}
		providers.Register(domain.MethodVNPay, vnpay)
		app.VNPay = vnpay
	}

	if cfg.MomoPartnerCode != "" {
		momo, err := payment.NewMomo(payment.MomoConfig{
			PartnerCode: cfg.MomoPartnerCode,
			AccessKey:   cfg.MomoAccessKey,
			SecretKey:   cfg.MomoSecretKey,
			Endpoint:    cfg.MomoEndpoint,
			ReturnURL:   cfg.MomoReturnURL,
			NotifyURL:   cfg.MomoNotifyURL,
			Logger:      &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("momo provider")
		}
		providers.Register(domain.MethodMomo, momo)
		app.Momo = momo
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
