package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/bizcore/bizcore/internal/apidocs"
	"github.com/bizcore/bizcore/internal/observability"
	"github.com/bizcore/bizcore/internal/party"
	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/purchase"
	"github.com/bizcore/bizcore/internal/shared"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	Metrics     *observability.Metrics
	Idempotency *shared.IdempotencyStore

	// Readiness probes keyed by dependency name. Nil entries are skipped.
	Probes map[string]Pinger

	PartyHandler    *crud.Handler[party.Party]
	PurchaseHandler *purchase.Handler
	DocsHandler     *apidocs.Handler
}

// NewRouter constructs the chi.Router with bizcore defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:      params.Logger,
		Config:      params.Config,
		Metrics:     params.Metrics,
		Idempotency: params.Idempotency,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", readiness(params.Probes))

	if params.PartyHandler != nil {
		r.Route("/public/party", params.PartyHandler.MountRoutes)
	}
	if params.PurchaseHandler != nil {
		r.Route("/purchase", params.PurchaseHandler.MountRoutes)
	}
	if params.DocsHandler != nil {
		r.Route("/schemas", params.DocsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func readiness(probes map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		names := make([]string, 0, len(probes))
		for name, probe := range probes {
			if probe != nil {
				names = append(names, name)
			}
		}
		errs := make([]error, len(names))
		var g errgroup.Group
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				errs[i] = probes[name].Ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		checks := make(map[string]string, len(names))
		for i, name := range names {
			if errs[i] != nil {
				status = http.StatusServiceUnavailable
				checks[name] = errs[i].Error()
				continue
			}
			checks[name] = "ok"
		}
		httpx.JSON(w, status, map[string]any{"status": http.StatusText(status), "checks": checks})
	}
}
