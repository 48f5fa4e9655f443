// Package crudtest provides an in-memory repository for handler tests.
package crudtest

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/schema"
	"github.com/bizcore/bizcore/internal/platform/store"
)

// Memory keeps rows in insertion order. Setting Err makes every call fail.
type Memory[T any] struct {
	mu    sync.Mutex
	def   schema.Table
	label string
	rows  []T

	Err error
}

// NewMemory builds an empty repository for def. label names the column
// projected on update and delete, like store.New.
func NewMemory[T any](def schema.Table, label string) *Memory[T] {
	return &Memory[T]{def: def, label: label}
}

func (m *Memory[T]) Insert(_ context.Context, row T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		var zero T
		return zero, m.Err
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *Memory[T]) Update(_ context.Context, id uuid.UUID, set []schema.Assignment) (store.Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return store.Change{}, m.Err
	}
	i := m.find(id)
	if i < 0 {
		return store.Change{}, httpx.ErrNotFound
	}
	v := reflect.ValueOf(&m.rows[i]).Elem()
	for _, a := range set {
		c, ok := m.def.Column(a.Column)
		if !ok {
			continue
		}
		field := v.Field(c.FieldIndex)
		if a.Value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		field.Set(reflect.ValueOf(a.Value))
	}
	return m.change(m.rows[i]), nil
}

func (m *Memory[T]) Delete(_ context.Context, id uuid.UUID) (store.Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return store.Change{}, m.Err
	}
	i := m.find(id)
	if i < 0 {
		return store.Change{}, httpx.ErrNotFound
	}
	row := m.rows[i]
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return m.change(row), nil
}

func (m *Memory[T]) Select(_ context.Context, id uuid.UUID) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if i := m.find(id); i >= 0 {
		return []T{m.rows[i]}, nil
	}
	return []T{}, nil
}

func (m *Memory[T]) SelectAll(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]T{}, m.rows...), nil
}

// Rows returns a copy of the stored rows.
func (m *Memory[T]) Rows() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T{}, m.rows...)
}

func (m *Memory[T]) find(id uuid.UUID) int {
	pk, _ := m.def.PrimaryKey()
	for i := range m.rows {
		key := reflect.ValueOf(m.rows[i]).Field(pk.FieldIndex).Interface()
		if key == id {
			return i
		}
	}
	return -1
}

func (m *Memory[T]) change(row T) store.Change {
	pk, _ := m.def.PrimaryKey()
	v := reflect.ValueOf(row)
	c := store.Change{UUID: v.Field(pk.FieldIndex).Interface().(uuid.UUID)}
	if m.label == "" {
		return c
	}
	if col, ok := m.def.Column(m.label); ok {
		name := v.Field(col.FieldIndex).String()
		c.Name = &name
	}
	return c
}
