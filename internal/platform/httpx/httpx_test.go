package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Notes *string `json:"notes,omitempty"`
}

func TestDecodeJSONFieldsReturnsPresentKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":null,"name":"Acme"}`))
	var p payload

	fields, err := DecodeJSONFields(req, &p)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "notes"}, fields)
	assert.Equal(t, "Acme", p.Name)
	assert.Nil(t, p.Notes)
}

func TestDecodeJSONFieldsRejectsBadBodies(t *testing.T) {
	for name, body := range map[string]string{
		"unknown field": `{"name":"Acme","extra":1}`,
		"not an object": `["Acme"]`,
		"malformed":     `{"name":`,
		"wrong type":    `{"name":5}`,
	} {
		t.Run(name, func(t *testing.T) {
			var p payload
			_, err := DecodeJSONFields(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestRespondWritesEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Respond(rr, Toast{Status: http.StatusCreated, Type: TypeCreate, Msg: "Acme created"}, map[string]string{"name": "Acme"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":201,"type":"create","msg":"Acme created","data":{"name":"Acme"}}`, rr.Body.String())
}

type fieldErr map[string]string

func (f fieldErr) Error() string                  { return "validation failed: bad" }
func (f fieldErr) Unwrap() error                  { return ErrValidation }
func (f fieldErr) FieldErrors() map[string]string { return f }

type countingRecorder struct{ n int }

func (c *countingRecorder) ObserveStorageError(string, string) { c.n++ }

func TestTranslatorFail(t *testing.T) {
	rec := &countingRecorder{}
	tr := NewTranslator(slog.New(slog.NewTextHandler(io.Discard, nil)), rec)

	cases := []struct {
		name   string
		op     string
		err    error
		status int
		msg    string
	}{
		{"not found with key", TypeUpdate, fmt.Errorf("wrap: %w", &NotFoundError{Entity: "vendor", Key: "42"}), http.StatusNotFound, "vendor 42 not found"},
		{"bare not found", TypeDelete, ErrNotFound, http.StatusNotFound, "vendor not found"},
		{"validation", TypeCreate, fieldErr{"name": "required"}, http.StatusBadRequest, "validation failed: bad"},
		{"storage", TypeDelete, errors.New("deadlock detected"), http.StatusInternalServerError, "Error deleting vendor - deadlock detected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tr.Fail(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.op, "vendor", tc.err)

			var env Envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.status, env.Status)
			assert.Equal(t, tc.op, env.Type)
			assert.Equal(t, tc.msg, env.Msg)
			assert.Nil(t, env.Data)
		})
	}
	assert.Equal(t, 1, rec.n)
}

func TestTranslatorCarriesFieldErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	NewTranslator(nil, nil).Fail(rr, httptest.NewRequest(http.MethodPost, "/", nil), TypeCreate, "party", fieldErr{"name": "required"})

	assert.JSONEq(t, `{"status":400,"type":"create","msg":"validation failed: bad","errors":{"name":"required"}}`, rr.Body.String())
}
