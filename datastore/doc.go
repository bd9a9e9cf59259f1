/*
Package datastore defines the persistence interface driven by resolved entity
metadata, together with the key helpers shared by its implementations.

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, id any) (*T, error)
	    Put(ctx context.Context, entity *T) error
	    Delete(ctx context.Context, id any) error
	}

Keys are read and written through the metadata of T. When the id field asks
for generated keys, Put assigns one before writing:

	id, generated, err := datastore.PrepareKey(md, entity, gen)

IDGenerator produces random UUIDs for string keys and sequence values for
numeric keys.

Implementations:
  - ddb: DynamoDB store, one table per entity keyed by the id column
  - mock: in-memory store for tests
*/
package datastore
