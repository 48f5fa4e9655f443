package party

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/crud"
)

// NewService constructs the party service.
func NewService(repo crud.Repository[Party]) *crud.Service[Party] {
	return crud.NewService(Entity, repo)
}

func stamp(p *Party, id uuid.UUID, at time.Time) {
	p.UUID = id
	p.CreatedAt = at
	p.UpdatedAt = nil
}

func normalize(p *Party) {
	p.Name = strings.TrimSpace(p.Name)
	if p.ShortName != nil {
		trimmed := strings.TrimSpace(*p.ShortName)
		p.ShortName = &trimmed
	}
}
