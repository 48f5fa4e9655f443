package entries

import (
	"log/slog"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
)

// NewHandler wires the entry endpoints.
func NewHandler(logger *slog.Logger, service *crud.Service[Entry], validator *validation.Validator, translator *httpx.Translator) *crud.Handler[Entry] {
	return crud.NewHandler(logger, service, validator, translator)
}
