package descriptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
)

// NewService constructs the description service.
func NewService(repo crud.Repository[Description]) *crud.Service[Description] {
	return crud.NewService(Entity, repo)
}

func stamp(d *Description, id uuid.UUID, at time.Time) {
	d.UUID = id
	d.CreatedAt = at
	d.UpdatedAt = nil
}
