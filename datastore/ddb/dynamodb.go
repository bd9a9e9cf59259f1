/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymeta/datastore"
	emerrors "github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
	"github.com/suparena/entitymeta/storagemodels"
)

// API is the subset of the DynamoDB client used by Store.
type API interface {
	CreateTable(ctx context.Context, in *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error)
	GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

var _ API = (*sdk.Client)(nil)

// Store implements datastore.DataStore[T] on the DynamoDB table described by
// the entity metadata.
type Store[T any] struct {
	api      API
	md       *resolver.EntityMetadata
	defaults storagemodels.DefaultsProvider
	gen      *datastore.IDGenerator
	logger   *slog.Logger
}

var _ datastore.DataStore[struct{}] = (*Store[struct{}])(nil)

// StoreOption is a functional option for configuring Store
type StoreOption func(*storeOptions)

type storeOptions struct {
	defaults storagemodels.DefaultsProvider
	gen      *datastore.IDGenerator
	logger   *slog.Logger
}

// WithDefaults sets the provider completing table limits on creation.
func WithDefaults(defaults storagemodels.DefaultsProvider) StoreOption {
	return func(o *storeOptions) {
		o.defaults = defaults
	}
}

// WithIDGenerator sets the generator for generated keys.
func WithIDGenerator(gen *datastore.IDGenerator) StoreOption {
	return func(o *storeOptions) {
		o.gen = gen
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// NewStore constructs a Store for T on api.
func NewStore[T any](api API, md *resolver.EntityMetadata, opts ...StoreOption) *Store[T] {
	o := storeOptions{defaults: storagemodels.BuiltinDefaults}
	for _, opt := range opts {
		opt(&o)
	}
	if o.gen == nil {
		o.gen = datastore.NewIDGenerator(0)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Store[T]{
		api:      api,
		md:       md,
		defaults: o.defaults,
		gen:      o.gen,
		logger:   o.logger.With(slog.String("table", md.TableName())),
	}
}

// OperationContext applies the timeout of md to ctx. A zero timeout leaves
// the service default in place.
func OperationContext(ctx context.Context, md *resolver.EntityMetadata) (context.Context, context.CancelFunc) {
	if md.TimeoutMillis() > 0 {
		return context.WithTimeout(ctx, md.Timeout())
	}
	return context.WithCancel(ctx)
}

// EnsureTable creates the table when the metadata asks for automatic
// creation. An existing table is left untouched.
func (s *Store[T]) EnsureTable(ctx context.Context) error {
	if !s.md.AutoCreateTable() {
		return nil
	}
	ctx, cancel := OperationContext(ctx, s.md)
	defer cancel()

	in := CreateTableInput(s.md, s.defaults)
	_, err := s.api.CreateTable(ctx, in)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("CreateTable failed: %w", err)
	}
	s.logger.Info("created table", slog.String("billing_mode", string(in.BillingMode)))
	return nil
}

// GetOne retrieves a single item by key.
func (s *Store[T]) GetOne(ctx context.Context, id any) (*T, error) {
	in, err := GetItemInput(s.md, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := OperationContext(ctx, s.md)
	defer cancel()

	out, err := s.api.GetItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, emerrors.NewNotFoundError(s.md.TableName(), datastore.KeyString(id))
	}

	result, err := UnmarshalItem[T](s.md, out.Item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores entity, generating its key when the metadata requests it.
func (s *Store[T]) Put(ctx context.Context, entity *T) error {
	if entity == nil {
		return emerrors.NewValidationError("entity", "must not be nil")
	}

	id, generated, err := datastore.PrepareKey(s.md, entity, s.gen)
	if err != nil {
		return err
	}

	in, err := PutItemInput(s.md, entity, id, generated)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	ctx, cancel := OperationContext(ctx, s.md)
	defer cancel()

	if _, err := s.api.PutItem(ctx, in); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return emerrors.NewAlreadyExistsError(s.md.TableName(), datastore.KeyString(id))
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item by key.
func (s *Store[T]) Delete(ctx context.Context, id any) error {
	in, err := DeleteItemInput(s.md, id)
	if err != nil {
		return err
	}

	ctx, cancel := OperationContext(ctx, s.md)
	defer cancel()

	if _, err := s.api.DeleteItem(ctx, in); err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}
