package entries

import (
	"github.com/bizcore/bizcore/internal/platform/crud"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// NewRepository returns the Postgres backed entry repository.
func NewRepository(db store.DBTX) crud.Repository[Entry] {
	return store.New[Entry](db, Table, "")
}
