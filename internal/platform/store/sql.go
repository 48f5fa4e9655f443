package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/schema"
)

func keyColumn(def schema.Table) string {
	pk, _ := def.PrimaryKey()
	return pk.Name
}

func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

func returning(def schema.Table, label string) string {
	if label == "" {
		return keyColumn(def)
	}
	return keyColumn(def) + ", " + label
}

func insertSQL(def schema.Table) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		def.FullName(), def.ColumnList(), placeholders(1, len(def.Columns)), def.ColumnList())
}

func updateSQL(def schema.Table, set []schema.Assignment, id uuid.UUID, label string) (string, []any) {
	clauses := make([]string, 0, len(set)+1)
	args := make([]any, 0, len(set)+1)
	for i, a := range set {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.Column, i+1))
		args = append(args, a.Value)
	}
	if def.Has("updated_at") {
		clauses = append(clauses, "updated_at = now()")
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		def.FullName(), strings.Join(clauses, ", "), keyColumn(def), len(args), returning(def, label))
	return query, args
}

func deleteSQL(def schema.Table, label string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING %s",
		def.FullName(), keyColumn(def), returning(def, label))
}

func selectSQL(def schema.Table, byKey bool) string {
	query := fmt.Sprintf("SELECT %s FROM %s", def.ColumnList(), def.FullName())
	if byKey {
		query += fmt.Sprintf(" WHERE %s = $1", keyColumn(def))
	}
	return query
}
