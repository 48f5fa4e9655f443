package entries

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
)

// NewService constructs the entry service.
func NewService(repo crud.Repository[Entry]) *crud.Service[Entry] {
	return crud.NewService(Entity, repo)
}

func stamp(e *Entry, id uuid.UUID, at time.Time) {
	e.UUID = id
	e.CreatedAt = at
	e.UpdatedAt = nil
}

// normalize rounds amounts to the stored scale so responses match what
// Postgres keeps.
func normalize(e *Entry) {
	e.Quantity = e.Quantity.Round(Scale)
	if e.Price.Valid {
		e.Price.Decimal = e.Price.Decimal.Round(Scale)
	}
}
