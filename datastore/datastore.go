/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// DataStore persists entities of type T in the table described by their
// resolved metadata. Keys are single scalar values of the id field's type.
type DataStore[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	// Put stores entity. When the metadata requests generated keys and the
	// entity has none, a key is generated and written back into entity.
	Put(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}
