package descriptions

import (
	"log/slog"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
)

// NewHandler wires the description endpoints.
func NewHandler(logger *slog.Logger, service *crud.Service[Description], validator *validation.Validator, translator *httpx.Translator) *crud.Handler[Description] {
	return crud.NewHandler(logger, service, validator, translator)
}
