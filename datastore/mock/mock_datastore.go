/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"maps"
	"sync"

	"github.com/suparena/entitymeta/datastore"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
)

// DataStore is an in-memory implementation of datastore.DataStore[T] driven
// by resolved entity metadata.
type DataStore[T any] struct {
	md  *resolver.EntityMetadata
	gen *datastore.IDGenerator

	mu          sync.RWMutex
	data        map[string]T
	getError    error
	putError    error
	deleteError error
}

var _ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore for the table described by md
func New[T any](md *resolver.EntityMetadata) *DataStore[T] {
	return &DataStore[T]{
		md:   md,
		gen:  datastore.NewIDGenerator(0),
		data: make(map[string]T),
	}
}

// WithIDGenerator sets the generator used for generated keys
func (m *DataStore[T]) WithIDGenerator(gen *datastore.IDGenerator) *DataStore[T] {
	m.gen = gen
	return m
}

// WithGetError makes GetOne operations return an error
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// TableName returns the table this store represents
func (m *DataStore[T]) TableName() string {
	return m.md.TableName()
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, id any) (*T, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := datastore.KeyString(id)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}
	return nil, errors.NewNotFoundError(m.md.TableName(), key)
}

// Put stores an entity, generating its key when required
func (m *DataStore[T]) Put(ctx context.Context, entity *T) error {
	if m.putError != nil {
		return m.putError
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if entity == nil {
		return errors.NewValidationError("entity", "must not be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, generated, err := datastore.PrepareKey(m.md, entity, m.gen)
	if err != nil {
		return err
	}

	key := datastore.KeyString(id)
	if _, exists := m.data[key]; exists && generated {
		return errors.NewAlreadyExistsError(m.md.TableName(), key)
	}

	m.data[key] = *entity
	return nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, id any) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := datastore.KeyString(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return errors.NewNotFoundError(m.md.TableName(), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]T)
}
