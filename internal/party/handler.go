package party

import (
	"log/slog"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
)

// NewHandler wires the party endpoints.
func NewHandler(logger *slog.Logger, service *crud.Service[Party], validator *validation.Validator, translator *httpx.Translator) *crud.Handler[Party] {
	return crud.NewHandler(logger, service, validator, translator)
}
