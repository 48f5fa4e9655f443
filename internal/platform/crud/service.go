// Package crud implements the five single-statement operations shared by
// every entity endpoint: insert, update, remove, select and select all.
package crud

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/schema"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// Entity describes one exposed table.
type Entity[T any] struct {
	// Name is used in error messages, e.g. "vendor".
	Name string
	// Title is the message of select responses, e.g. "Vendor".
	Title string
	Table schema.Table
	// Label returns the identifier interpolated into create messages.
	Label func(T) string
	// Stamp assigns the server-managed key and creation time.
	Stamp func(row *T, id uuid.UUID, at time.Time)
	// Normalize cleans caller input before validation. Optional.
	Normalize func(row *T)
}

// Repository is the storage contract of one entity.
type Repository[T any] interface {
	Insert(ctx context.Context, row T) (T, error)
	Update(ctx context.Context, id uuid.UUID, set []schema.Assignment) (store.Change, error)
	Delete(ctx context.Context, id uuid.UUID) (store.Change, error)
	Select(ctx context.Context, id uuid.UUID) ([]T, error)
	SelectAll(ctx context.Context) ([]T, error)
}

// Service applies entity rules around the repository.
type Service[T any] struct {
	entity Entity[T]
	repo   Repository[T]
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService constructs a Service.
func NewService[T any](entity Entity[T], repo Repository[T]) *Service[T] {
	return &Service[T]{
		entity: entity,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.New,
	}
}

// Entity returns the entity the service operates on.
func (s *Service[T]) Entity() Entity[T] {
	return s.entity
}

// Insert stamps row with a fresh key and creation time and stores it.
func (s *Service[T]) Insert(ctx context.Context, row T) (T, error) {
	if s.entity.Stamp != nil {
		s.entity.Stamp(&row, s.newID(), s.now())
	}
	return s.repo.Insert(ctx, row)
}

// Update replaces the present fields of the row keyed by id.
func (s *Service[T]) Update(ctx context.Context, id uuid.UUID, row T, fields []string) (store.Change, error) {
	set, err := s.entity.Table.Assignments(row, fields)
	if err != nil {
		return store.Change{}, err
	}
	return s.repo.Update(ctx, id, set)
}

// Remove hard deletes the row keyed by id.
func (s *Service[T]) Remove(ctx context.Context, id uuid.UUID) (store.Change, error) {
	return s.repo.Delete(ctx, id)
}

// Select returns zero or one row.
func (s *Service[T]) Select(ctx context.Context, id uuid.UUID) ([]T, error) {
	return s.repo.Select(ctx, id)
}

// SelectAll returns every row.
func (s *Service[T]) SelectAll(ctx context.Context) ([]T, error) {
	return s.repo.SelectAll(ctx)
}
