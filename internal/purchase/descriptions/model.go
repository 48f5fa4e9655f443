package descriptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Description is the header of a purchase placed with one vendor.
type Description struct {
	UUID       uuid.UUID  `json:"uuid" db:"uuid" col:"pk"`
	VendorUUID uuid.UUID  `json:"vendor_uuid" db:"vendor_uuid" validate:"required" col:"ref=purchase.vendor"`
	IsLocal    int        `json:"is_local" db:"is_local" validate:"oneof=0 1"`
	LCNumber   *string    `json:"lc_number,omitempty" db:"lc_number" validate:"omitempty,max=64"`
	CreatedBy  uuid.UUID  `json:"created_by" db:"created_by" validate:"required"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at" col:"auto,default=now()"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at" col:"auto"`
	Remarks    *string    `json:"remarks,omitempty" db:"remarks"`
}

// Table declares purchase.description.
var Table = schema.MustDescribe("purchase", "description", "Purchase/Description", Description{})

// Entity exposes Description through the shared CRUD handlers. Descriptions
// have no name, so messages carry the uuid.
var Entity = crud.Entity[Description]{
	Name:  "description",
	Title: "Description",
	Table: Table,
	Label: func(d Description) string { return d.UUID.String() },
	Stamp: stamp,
	Normalize: func(d *Description) {
		if d.LCNumber != nil && *d.LCNumber == "" {
			d.LCNumber = nil
		}
	},
}
