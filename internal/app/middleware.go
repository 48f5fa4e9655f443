package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/bizcore/bizcore/internal/observability"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/shared"
)

// IdempotencyHeader carries the client chosen key of a create request.
const IdempotencyHeader = "Idempotency-Key"

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger      *slog.Logger
	Config      *Config
	Metrics     *observability.Metrics
	Idempotency *shared.IdempotencyStore
}

// MiddlewareStack installs the bizcore middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         cfg.Config == nil || !cfg.Config.IsProduction(),
	})

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}
	rate := 60
	if cfg.Config != nil && cfg.Config.RateLimitPerMinute > 0 {
		rate = cfg.Config.RateLimitPerMinute
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					logger.Warn("secure headers blocked request", slog.Any("error", err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		middleware.Compress(5),
		httprate.Limit(rate, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	if cfg.Idempotency != nil {
		middlewares = append(middlewares, Idempotency(cfg.Idempotency, logger, cfg.Metrics))
	}
	return middlewares
}

// Idempotency rejects a POST whose Idempotency-Key was already used on the
// same path. The key is released when the request fails or panics so it can
// be retried.
// Redis errors let the request through.
func Idempotency(store *shared.IdempotencyStore, logger *slog.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			module := r.URL.Path

			err := store.CheckAndInsert(r.Context(), key, module)
			switch {
			case errors.Is(err, shared.ErrIdempotencyConflict):
				metrics.ObserveReplay()
				httpx.JSON(w, http.StatusConflict, httpx.Envelope{
					Status: http.StatusConflict,
					Type:   httpx.TypeCreate,
					Msg:    "request " + key + " already processed",
				})
				return
			case err != nil:
				logger.Warn("idempotency check skipped", slog.String("path", module), slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				// Status 0 means the handler panicked before writing.
				if status := ww.Status(); status == 0 || status >= http.StatusBadRequest {
					if err := store.Delete(context.WithoutCancel(r.Context()), key, module); err != nil {
						logger.Warn("idempotency release", slog.String("path", module), slog.Any("error", err))
					}
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
