package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Vendor supplies purchased materials.
type Vendor struct {
	UUID          uuid.UUID `json:"uuid" db:"uuid" col:"pk"`
	Name          string    `json:"name" db:"name" validate:"required,max=255"`
	ContactName   string    `json:"contact_name" db:"contact_name" validate:"max=255" col:"default=''"`
	Email         string    `json:"email" db:"email" validate:"required,email"`
	OfficeAddress string    `json:"office_address" db:"office_address" validate:"required"`
	ContactNumber *string   `json:"contact_number,omitempty" db:"contact_number" validate:"omitempty,max=32"`
	Remarks       *string   `json:"remarks,omitempty" db:"remarks"`
}

// Table declares purchase.vendor.
var Table = schema.MustDescribe("purchase", "vendor", "Purchase/Vendor", Vendor{})

// Entity exposes Vendor through the shared CRUD handlers.
var Entity = crud.Entity[Vendor]{
	Name:      "vendor",
	Title:     "Vendor",
	Table:     Table,
	Label:     func(v Vendor) string { return v.Name },
	Stamp:     func(v *Vendor, id uuid.UUID, _ time.Time) { v.UUID = id },
	Normalize: normalize,
}
