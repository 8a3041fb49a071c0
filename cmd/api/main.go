package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RafaelMurad/PawCare/internal/adapters/auth/jwtauth"
	"github.com/RafaelMurad/PawCare/internal/adapters/llm/anthropic"
	"github.com/RafaelMurad/PawCare/internal/adapters/llm/openai"
	pg "github.com/RafaelMurad/PawCare/internal/adapters/storage/postgres"
	"github.com/RafaelMurad/PawCare/internal/config"
	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
	"github.com/RafaelMurad/PawCare/internal/domain/schedule"
	"github.com/RafaelMurad/PawCare/internal/platform/httpclient"
	"github.com/RafaelMurad/PawCare/internal/ports/auth"
	"github.com/RafaelMurad/PawCare/internal/router"
	"github.com/RafaelMurad/PawCare/internal/scheduler"
)

// devSecret firma tokens cuando no hay secret configurado (solo modo
// dev, sin base de datos).
const devSecret = "pawcare-dev-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	// Storage: DSN presente => Postgres; si no, memoria (modo dev).
	var stores router.Stores
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres open failed")
		}
		defer db.Close()

		foodRepo := pg.NewFoodRepo(db)
		if err := foodRepo.Seed(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("food seed failed")
		}
		stores = router.PostgresStores(db)
		logger.Info().Msg("using postgres storage")
	} else {
		stores = router.MemoryStores()
		logger.Warn().Msg("no database dsn, using in-memory storage")
	}

	// Auth: con secret configurado se exige bearer token; sin secret
	// (dev) el verifier queda nil y vale X-Debug-User-ID.
	secret := strings.TrimSpace(cfg.Auth.Secret)
	var verifier auth.AuthVerifier
	if secret != "" {
		verifier = jwtauth.NewVerifier(secret)
	} else {
		secret = devSecret
		logger.Warn().Msg("no auth secret, running in dev mode")
	}
	issuer := jwtauth.NewIssuer(secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	registry := buildRegistry(cfg.AI, logger)

	windows := schedule.Windows{
		LookaheadScanDays:          cfg.Reminders.LookaheadScanDays,
		DashboardEventsDays:        cfg.Reminders.DashboardEventsDays,
		DashboardVaccinationMonths: cfg.Reminders.DashboardVaccinationMonths,
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		TokenIssuer:  issuer,
		Stores:       stores,
		Windows:      windows,
		Registry:     registry,
		Logger:       logger,
	})

	sched := scheduler.New(
		stores.Vaccinations,
		stores.Events,
		stores.Dogs,
		scheduler.NewLogNotifier(logger),
		cfg.Reminders.LookaheadScanDays,
		logger,
	)
	if err := sched.Start(cfg.Reminders.Hour); err != nil {
		logger.Fatal().Err(err).Msg("scheduler start failed")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	<-sched.Stop().Done()
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// buildRegistry registra los proveedores con clave configurada. Sin
// claves el gateway responde 502 pero el servidor arranca igual.
func buildRegistry(cfg config.AIConfig, logger zerolog.Logger) *advisor.Registry {
	registry := advisor.NewRegistry(cfg.DefaultProvider)

	if cfg.OpenAIKey != "" {
		p, err := openai.New(httpclient.New(0), cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			logger.Warn().Err(err).Msg("openai provider not registered")
		} else {
			registry.Register(p)
			logger.Info().Msg("openai provider registered")
		}
	}
	if cfg.AnthropicKey != "" {
		p, err := anthropic.New(httpclient.New(0), cfg.AnthropicKey, cfg.AnthropicModel)
		if err != nil {
			logger.Warn().Err(err).Msg("anthropic provider not registered")
		} else {
			registry.Register(p)
			logger.Info().Msg("anthropic provider registered")
		}
	}
	if len(registry.Names()) == 0 {
		logger.Warn().Msg("no ai providers configured")
	}
	return registry
}
