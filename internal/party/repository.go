package party

import (
	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// NewRepository returns the Postgres backed party repository.
func NewRepository(db store.DBTX) crud.Repository[Party] {
	return store.New[Party](db, Table, "name")
}
