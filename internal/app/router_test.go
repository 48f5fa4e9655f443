package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcore/bizcore/internal/apidocs"
	"github.com/bizcore/bizcore/internal/observability"
	"github.com/bizcore/bizcore/internal/party"
	"github.com/bizcore/bizcore/internal/platform/crud/crudtest"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
	"github.com/bizcore/bizcore/internal/purchase"
	"github.com/bizcore/bizcore/internal/purchase/descriptions"
	"github.com/bizcore/bizcore/internal/purchase/entries"
	"github.com/bizcore/bizcore/internal/purchase/vendors"
	"github.com/bizcore/bizcore/internal/shared"
)

func newTestRouter(t *testing.T, idem *shared.IdempotencyStore, probes map[string]Pinger) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()
	validator := validation.New()
	translator := httpx.NewTranslator(logger, metrics)

	return NewRouter(RouterParams{
		Logger:      logger,
		Config:      &Config{AppEnv: "test", RateLimitPerMinute: 1000, AppRequestTimeout: time.Second},
		Metrics:     metrics,
		Idempotency: idem,
		Probes:      probes,
		PartyHandler: party.NewHandler(logger,
			party.NewService(crudtest.NewMemory[party.Party](party.Table, "name")), validator, translator),
		PurchaseHandler: &purchase.Handler{
			Vendors: vendors.NewHandler(logger,
				vendors.NewService(crudtest.NewMemory[vendors.Vendor](vendors.Table, "name")), validator, translator),
			Descriptions: descriptions.NewHandler(logger,
				descriptions.NewService(crudtest.NewMemory[descriptions.Description](descriptions.Table, "")), validator, translator),
			Entries: entries.NewHandler(logger,
				entries.NewService(crudtest.NewMemory[entries.Entry](entries.Table, "")), validator, translator),
		},
		DocsHandler: apidocs.NewHandler(apidocs.Document{Table: vendors.Table, Tag: apidocs.Tag{Name: "Vendor", Description: "Vendor"}}),
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestReadyzReportsFailingProbe(t *testing.T) {
	router := newTestRouter(t, nil, map[string]Pinger{
		"postgres": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
		"disabled": nil,
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var body struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "connection refused"}, body.Checks)
}

func TestEntityRoutesAreMounted(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	for _, path := range []string{"/public/party", "/purchase/vendor", "/purchase/description", "/purchase/entry", "/schemas", "/schemas/purchase.vendor", "/metrics"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestPartyScenario(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	send := func(method, path, body string) httpx.Envelope {
		t.Helper()
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
		var env httpx.Envelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		require.Equal(t, rr.Code, env.Status)
		return env
	}

	env := send(http.MethodPost, "/public/party", `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Acme created", env.Msg)
	id := env.Data.(map[string]any)["uuid"].(string)

	env = send(http.MethodPut, "/public/party/"+id, `{"name":"Acme Corp"}`)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Acme Corp updated", env.Msg)

	env = send(http.MethodDelete, "/public/party/"+id, "")
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "Acme Corp deleted", env.Msg)

	env = send(http.MethodGet, "/public/party/"+id, "")
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, []any{}, env.Data)

	env = send(http.MethodDelete, "/public/party/"+id, "")
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "party "+id+" not found", env.Msg)
}

func TestIdempotentCreate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	router := newTestRouter(t, shared.NewIdempotencyStore(client, time.Minute), nil)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/public/party", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "order-1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	rr := post(`{"short_name":"missing name"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, mr.Exists(shared.IdempotencyKey("/public/party", "order-1")))

	rr = post(`{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = post(`{"name":"Acme"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "order-1 already processed")
}
