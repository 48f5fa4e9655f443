package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

// NotFoundError names the entity and key that matched no row.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldErrors is implemented by validation errors that carry per-field messages.
type FieldErrors interface {
	FieldErrors() map[string]string
}

// ErrorRecorder counts storage failures.
type ErrorRecorder interface {
	ObserveStorageError(entity, op string)
}

// Translator maps every failed operation onto an envelope.
type Translator struct {
	logger   *slog.Logger
	recorder ErrorRecorder
}

// NewTranslator builds a Translator. recorder may be nil.
func NewTranslator(logger *slog.Logger, recorder ErrorRecorder) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{logger: logger, recorder: recorder}
}

var verbs = map[string]string{
	TypeCreate:    "creating",
	TypeUpdate:    "updating",
	TypeDelete:    "deleting",
	TypeSelect:    "selecting",
	TypeSelectAll: "listing",
}

// Fail writes the error envelope for err raised by operation op on entity.
func (t *Translator) Fail(w http.ResponseWriter, r *http.Request, op, entity string, err error) {
	env := Envelope{Type: op}

	var notFound *NotFoundError
	var fields FieldErrors
	switch {
	case errors.As(err, &notFound):
		env.Status = http.StatusNotFound
		env.Msg = notFound.Error()
	case errors.Is(err, ErrNotFound):
		env.Status = http.StatusNotFound
		env.Msg = fmt.Sprintf("%s not found", entity)
	case errors.Is(err, ErrValidation):
		env.Status = http.StatusBadRequest
		env.Msg = err.Error()
		if errors.As(err, &fields) {
			env.Errors = fields.FieldErrors()
		}
	default:
		env.Status = http.StatusInternalServerError
		env.Msg = fmt.Sprintf("Error %s %s - %s", verbs[op], entity, err.Error())
		t.logger.Error("storage operation failed",
			slog.String("entity", entity),
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
		if t.recorder != nil {
			t.recorder.ObserveStorageError(entity, op)
		}
	}
	JSON(w, env.Status, env)
}
