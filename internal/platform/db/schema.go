package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bizcore/bizcore/internal/platform/schema"
)

type execer interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

// ApplySchema creates the declared tables, in order, inside one transaction.
// Existing tables are left untouched.
func ApplySchema(ctx context.Context, db TxBeginner, tables ...schema.Table) error {
	return WithTx(ctx, db, func(tx pgx.Tx) error {
		return applyDDL(ctx, tx, tables)
	})
}

func applyDDL(ctx context.Context, db execer, tables []schema.Table) error {
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, stmt := range t.DDL() {
			if seen[stmt] {
				continue
			}
			seen[stmt] = true
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("platform/db: apply %s: %w", t.FullName(), err)
			}
		}
	}
	return nil
}
