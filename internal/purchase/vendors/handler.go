package vendors

import (
	"log/slog"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/validation"
)

// NewHandler wires the vendor endpoints.
func NewHandler(logger *slog.Logger, service *crud.Service[Vendor], validator *validation.Validator, translator *httpx.Translator) *crud.Handler[Vendor] {
	return crud.NewHandler(logger, service, validator, translator)
}
