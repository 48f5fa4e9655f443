package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bizcore/bizcore/internal/platform/schema"
)

type note struct {
	UUID      uuid.UUID  `db:"uuid" col:"pk"`
	Name      string     `db:"name"`
	Body      *string    `db:"body"`
	CreatedAt time.Time  `db:"created_at" col:"auto,default=now()"`
	UpdatedAt *time.Time `db:"updated_at" col:"auto"`
}

type tag struct {
	UUID uuid.UUID `db:"uuid" col:"pk"`
	Name string    `db:"name"`
}

var (
	noteTable = schema.MustDescribe("public", "note", "Public/Note", note{})
	tagTable  = schema.MustDescribe("purchase", "tag", "Purchase/Tag", tag{})
)

func TestInsertSQL(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO public.note (uuid, name, body, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING uuid, name, body, created_at, updated_at",
		insertSQL(noteTable))
}

func TestUpdateSQLStampsUpdatedAt(t *testing.T) {
	id := uuid.New()
	query, args := updateSQL(noteTable, []schema.Assignment{{Column: "name", Value: "x"}, {Column: "body", Value: nil}}, id, "name")

	assert.Equal(t, "UPDATE public.note SET name = $1, body = $2, updated_at = now() WHERE uuid = $3 RETURNING uuid, name", query)
	assert.Equal(t, []any{"x", nil, id}, args)
}

func TestUpdateSQLWithoutTimestamps(t *testing.T) {
	id := uuid.New()
	query, args := updateSQL(tagTable, []schema.Assignment{{Column: "name", Value: "y"}}, id, "")

	assert.Equal(t, "UPDATE purchase.tag SET name = $1 WHERE uuid = $2 RETURNING uuid", query)
	assert.Equal(t, []any{"y", id}, args)
}

func TestDeleteAndSelectSQL(t *testing.T) {
	assert.Equal(t, "DELETE FROM public.note WHERE uuid = $1 RETURNING uuid, name", deleteSQL(noteTable, "name"))
	assert.Equal(t, "DELETE FROM purchase.tag WHERE uuid = $1 RETURNING uuid", deleteSQL(tagTable, ""))
	assert.Equal(t, "SELECT uuid, name FROM purchase.tag", selectSQL(tagTable, false))
	assert.Equal(t, "SELECT uuid, name FROM purchase.tag WHERE uuid = $1", selectSQL(tagTable, true))
}

func TestChangeLabel(t *testing.T) {
	id := uuid.New()
	name := "Acme"
	assert.Equal(t, "Acme", Change{UUID: id, Name: &name}.Label())
	assert.Equal(t, id.String(), Change{UUID: id}.Label())
}
