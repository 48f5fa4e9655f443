package descriptions

import (
	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// NewRepository returns the Postgres backed description repository.
func NewRepository(db store.DBTX) crud.Repository[Description] {
	return store.New[Description](db, Table, "")
}
