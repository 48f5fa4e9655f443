package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/bizcore/bizcore/internal/apidocs"
	"github.com/bizcore/bizcore/internal/app"
	"github.com/bizcore/bizcore/internal/observability"
	"github.com/bizcore/bizcore/internal/party"
	"github.com/bizcore/bizcore/internal/platform/cache"
	"github.com/bizcore/bizcore/internal/platform/db"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
	"github.com/bizcore/bizcore/internal/purchase"
	"github.com/bizcore/bizcore/internal/purchase/descriptions"
	"github.com/bizcore/bizcore/internal/purchase/entries"
	"github.com/bizcore/bizcore/internal/purchase/vendors"
	"github.com/bizcore/bizcore/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bizcore stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if cfg.DBApplySchema {
		if err := db.ApplySchema(ctx, dbpool, party.Table, vendors.Table, descriptions.Table, entries.Table); err != nil {
			return err
		}
		logger.Info("schema applied")
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, idempotency disabled", slog.Any("error", err))
	}
	probes := map[string]app.Pinger{"postgres": dbpool}
	var idempotency *shared.IdempotencyStore
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		idempotency = shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
		probes["redis"] = app.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	metrics := observability.NewMetrics()
	validator := validation.New()
	translator := httpx.NewTranslator(logger, metrics)

	partyHandler := party.NewHandler(logger, party.NewService(party.NewRepository(dbpool)), validator, translator)
	purchaseHandler := &purchase.Handler{
		Vendors:      vendors.NewHandler(logger, vendors.NewService(vendors.NewRepository(dbpool)), validator, translator),
		Descriptions: descriptions.NewHandler(logger, descriptions.NewService(descriptions.NewRepository(dbpool)), validator, translator),
		Entries:      entries.NewHandler(logger, entries.NewService(entries.NewRepository(dbpool)), validator, translator),
	}
	docsHandler := apidocs.NewHandler(
		apidocs.Document{Table: party.Table, Tag: apidocs.Tag{Name: "Party", Description: "Party"}},
		apidocs.Document{Table: vendors.Table, Tag: apidocs.Tag{Name: "Vendor", Description: "Vendor"}},
		apidocs.Document{Table: descriptions.Table, Tag: apidocs.Tag{Name: "Description", Description: "Description"}},
		apidocs.Document{Table: entries.Table, Tag: apidocs.Tag{Name: "Entry", Description: "Entry"}},
	)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Metrics:         metrics,
		Idempotency:     idempotency,
		Probes:          probes,
		PartyHandler:    partyHandler,
		PurchaseHandler: purchaseHandler,
		DocsHandler:     docsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
