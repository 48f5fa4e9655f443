// Package purchase groups the vendor, description and entry endpoints under
// one router.
package purchase

import (
	"github.com/go-chi/chi/v5"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/purchase/descriptions"
	"github.com/bizcore/bizcore/internal/purchase/entries"
	"github.com/bizcore/bizcore/internal/purchase/vendors"
)

// Handler mounts the purchase entities.
type Handler struct {
	Vendors      *crud.Handler[vendors.Vendor]
	Descriptions *crud.Handler[descriptions.Description]
	Entries      *crud.Handler[entries.Entry]
}

// MountRoutes registers /vendor, /description and /entry.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/vendor", h.Vendors.MountRoutes)
	r.Route("/description", h.Descriptions.MountRoutes)
	r.Route("/entry", h.Entries.MountRoutes)
}
