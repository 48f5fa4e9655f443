package schema

import (
	"fmt"
	"strings"
)

// DDL returns the idempotent statements creating the table and its schema.
func (t Table) DDL() []string {
	var stmts []string
	if t.Schema != "" && t.Schema != "public" {
		stmts = append(stmts, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", t.Schema))
	}
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, c.definition())
	}
	stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.FullName(), strings.Join(defs, ",\n\t")))
	return stmts
}

func (c Column) definition() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.SQLType)
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
		if c.Default == "" && c.SQLType == "uuid" {
			b.WriteString(" DEFAULT gen_random_uuid()")
		}
	} else if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if c.References != "" {
		fmt.Fprintf(&b, " REFERENCES %s(uuid)", c.References)
	}
	return b.String()
}
