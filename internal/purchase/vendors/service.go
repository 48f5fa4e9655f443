package vendors

import (
	"strings"

	"github.com/bizcore/bizcore/internal/platform/crud"
)

// NewService constructs the vendor service.
func NewService(repo crud.Repository[Vendor]) *crud.Service[Vendor] {
	return crud.NewService(Entity, repo)
}

func normalize(v *Vendor) {
	v.Name = strings.TrimSpace(v.Name)
	v.ContactName = strings.TrimSpace(v.ContactName)
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	v.OfficeAddress = strings.TrimSpace(v.OfficeAddress)
	if v.ContactNumber != nil {
		number := strings.TrimSpace(*v.ContactNumber)
		v.ContactNumber = &number
	}
}
