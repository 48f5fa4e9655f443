package vendors

import (
	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// NewRepository returns the Postgres backed vendor repository.
func NewRepository(db store.DBTX) crud.Repository[Vendor] {
	return store.New[Vendor](db, Table, "name")
}
