package crud

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
)

// Handler exposes an entity over HTTP.
type Handler[T any] struct {
	logger     *slog.Logger
	service    *Service[T]
	entity     Entity[T]
	validator  *validation.Validator
	translator *httpx.Translator
}

// NewHandler constructs a Handler.
func NewHandler[T any](logger *slog.Logger, service *Service[T], validator *validation.Validator, translator *httpx.Translator) *Handler[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[T]{
		logger:     logger,
		service:    service,
		entity:     service.Entity(),
		validator:  validator,
		translator: translator,
	}
}

// MountRoutes registers the five entity routes.
func (h *Handler[T]) MountRoutes(r chi.Router) {
	r.Get("/", h.SelectAll)
	r.Post("/", h.Insert)
	r.Get("/{uuid}", h.Select)
	r.Put("/{uuid}", h.Update)
	r.Delete("/{uuid}", h.Remove)
}

func (h *Handler[T]) Insert(w http.ResponseWriter, r *http.Request) {
	var row T
	fields, err := httpx.DecodeJSONFields(r, &row)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeCreate, h.entity.Name, err)
		return
	}
	h.normalize(&row)
	if err := h.validator.Insert(h.entity.Table, row, fields); err != nil {
		h.translator.Fail(w, r, httpx.TypeCreate, h.entity.Name, err)
		return
	}

	created, err := h.service.Insert(r.Context(), row)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeCreate, h.entity.Name, err)
		return
	}

	h.logger.Debug("row created", slog.String("entity", h.entity.Name))
	httpx.Respond(w, httpx.Toast{
		Status: http.StatusCreated,
		Type:   httpx.TypeCreate,
		Msg:    fmt.Sprintf("%s created", h.entity.Label(created)),
	}, created)
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.key(r)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeUpdate, h.entity.Name, err)
		return
	}
	var row T
	fields, err := httpx.DecodeJSONFields(r, &row)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeUpdate, h.entity.Name, err)
		return
	}
	h.normalize(&row)
	if err := h.validator.Update(h.entity.Table, row, fields); err != nil {
		h.translator.Fail(w, r, httpx.TypeUpdate, h.entity.Name, err)
		return
	}

	change, err := h.service.Update(r.Context(), id, row, fields)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeUpdate, h.entity.Name, h.notFound(id, err))
		return
	}

	h.logger.Debug("row updated", slog.String("entity", h.entity.Name), slog.String("uuid", change.UUID.String()))
	// Updates answer 201, not 200.
	httpx.Respond(w, httpx.Toast{
		Status: http.StatusCreated,
		Type:   httpx.TypeUpdate,
		Msg:    fmt.Sprintf("%s updated", change.Label()),
	}, change)
}

func (h *Handler[T]) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := h.key(r)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeDelete, h.entity.Name, err)
		return
	}

	change, err := h.service.Remove(r.Context(), id)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeDelete, h.entity.Name, h.notFound(id, err))
		return
	}

	h.logger.Debug("row deleted", slog.String("entity", h.entity.Name), slog.String("uuid", change.UUID.String()))
	httpx.Respond(w, httpx.Toast{
		Status: http.StatusOK,
		Type:   httpx.TypeDelete,
		Msg:    fmt.Sprintf("%s deleted", change.Label()),
	}, change)
}

func (h *Handler[T]) Select(w http.ResponseWriter, r *http.Request) {
	id, err := h.key(r)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeSelect, h.entity.Name, err)
		return
	}

	rows, err := h.service.Select(r.Context(), id)
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeSelect, h.entity.Name, err)
		return
	}

	httpx.Respond(w, httpx.Toast{Status: http.StatusOK, Type: httpx.TypeSelect, Msg: h.entity.Title}, rows)
}

func (h *Handler[T]) SelectAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.SelectAll(r.Context())
	if err != nil {
		h.translator.Fail(w, r, httpx.TypeSelectAll, h.entity.Name, err)
		return
	}

	httpx.Respond(w, httpx.Toast{Status: http.StatusOK, Type: httpx.TypeSelectAll, Msg: h.entity.Title + " list"}, rows)
}

func (h *Handler[T]) key(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "uuid")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validation.Errors{"uuid": "uuid"}
	}
	return id, nil
}

func (h *Handler[T]) normalize(row *T) {
	if h.entity.Normalize != nil {
		h.entity.Normalize(row)
	}
}

func (h *Handler[T]) notFound(id uuid.UUID, err error) error {
	if errors.Is(err, httpx.ErrNotFound) {
		return &httpx.NotFoundError{Entity: h.entity.Name, Key: id.String()}
	}
	return err
}
