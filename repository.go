/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymeta

import (
	"context"

	"github.com/suparena/entitymeta/datastore"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
)

// Repository couples the metadata of T with the DataStore holding it.
type Repository[T any] struct {
	md    *resolver.EntityMetadata
	store datastore.DataStore[T]
}

// OpenFunc builds the DataStore of an entity from its metadata.
type OpenFunc[T any] func(md *resolver.EntityMetadata) (datastore.DataStore[T], error)

// OpenRepository resolves T through c and opens its store.
//
//	repo, err := entitymeta.OpenRepository(catalog, func(md *resolver.EntityMetadata) (datastore.DataStore[Order], error) {
//	    return ddb.NewStore[Order](client, md, ddb.WithDefaults(cfg)), nil
//	})
func OpenRepository[T any](c *Catalog, open OpenFunc[T]) (*Repository[T], error) {
	md, err := Resolve[T](c)
	if err != nil {
		return nil, err
	}
	store, err := open(md)
	if err != nil {
		return nil, err
	}
	return NewRepository(md, store), nil
}

// NewRepository wraps an already opened store.
func NewRepository[T any](md *resolver.EntityMetadata, store datastore.DataStore[T]) *Repository[T] {
	return &Repository[T]{md: md, store: store}
}

// Metadata returns the resolved metadata of T.
func (r *Repository[T]) Metadata() *resolver.EntityMetadata {
	return r.md
}

// Store returns the underlying DataStore.
func (r *Repository[T]) Store() datastore.DataStore[T] {
	return r.store
}

// Get loads the entity stored under id.
func (r *Repository[T]) Get(ctx context.Context, id any) (*T, error) {
	return r.store.GetOne(ctx, id)
}

// Save stores entity. Keys requested as generated are assigned before the
// write and are visible on entity afterwards.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "must not be nil")
	}
	return r.store.Put(ctx, entity)
}

// Delete removes the entity stored under id.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	return r.store.Delete(ctx, id)
}

// Remove deletes entity by reading its key.
func (r *Repository[T]) Remove(ctx context.Context, entity *T) error {
	id, err := r.md.ID(entity)
	if err != nil {
		return err
	}
	if datastore.IsZeroID(id) {
		return errors.NewValidationError(r.md.IDField().Name, "key is required")
	}
	return r.store.Delete(ctx, id)
}
