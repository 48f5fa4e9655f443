package party

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Party is a business counterpart known to the application.
type Party struct {
	UUID      uuid.UUID  `json:"uuid" db:"uuid" col:"pk"`
	Name      string     `json:"name" db:"name" validate:"required,max=255"`
	ShortName *string    `json:"short_name,omitempty" db:"short_name" validate:"omitempty,max=50"`
	Remarks   *string    `json:"remarks,omitempty" db:"remarks"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" col:"auto,default=now()"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at" col:"auto"`
}

// Table declares public.party.
var Table = schema.MustDescribe("public", "party", "Public/Party", Party{})

// Entity exposes Party through the shared CRUD handlers.
var Entity = crud.Entity[Party]{
	Name:      "party",
	Title:     "Party",
	Table:     Table,
	Label:     func(p Party) string { return p.Name },
	Stamp:     stamp,
	Normalize: normalize,
}
