package entries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Scale is the number of fractional digits stored for quantity and price.
const Scale = 4

// Entry is one material line of a purchase description.
type Entry struct {
	UUID                    uuid.UUID           `json:"uuid" db:"uuid" col:"pk"`
	PurchaseDescriptionUUID uuid.UUID           `json:"purchase_description_uuid" db:"purchase_description_uuid" validate:"required" col:"ref=purchase.description"`
	MaterialInfoUUID        uuid.UUID           `json:"material_info_uuid" db:"material_info_uuid" validate:"required"`
	Quantity                decimal.Decimal     `json:"quantity" db:"quantity" validate:"gt=0"`
	Price                   decimal.NullDecimal `json:"price" db:"price" validate:"omitempty,gte=0"`
	CreatedBy               uuid.UUID           `json:"created_by" db:"created_by" validate:"required"`
	CreatedAt               time.Time           `json:"created_at" db:"created_at" col:"auto,default=now()"`
	UpdatedAt               *time.Time          `json:"updated_at,omitempty" db:"updated_at" col:"auto"`
	Remarks                 *string             `json:"remarks,omitempty" db:"remarks"`
}

// MarshalJSON writes quantity and price as JSON numbers.
func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	var price *json.Number
	if e.Price.Valid {
		n := json.Number(e.Price.Decimal.String())
		price = &n
	}
	return json.Marshal(struct {
		plain
		Quantity json.Number  `json:"quantity"`
		Price    *json.Number `json:"price"`
	}{
		plain:    plain(e),
		Quantity: json.Number(e.Quantity.String()),
		Price:    price,
	})
}

// Table declares purchase.entry.
var Table = schema.MustDescribe("purchase", "entry", "Purchase/Entry", Entry{})

// Entity exposes Entry through the shared CRUD handlers.
var Entity = crud.Entity[Entry]{
	Name:      "entry",
	Title:     "Entry",
	Table:     Table,
	Label:     func(e Entry) string { return e.UUID.String() },
	Stamp:     stamp,
	Normalize: normalize,
}
