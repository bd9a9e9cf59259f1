/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/suparena/entitymeta/environment"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/expression"
	"github.com/suparena/entitymeta/registry"
	"github.com/suparena/entitymeta/storagemodels"
	"github.com/suparena/entitymeta/wiretype"
)

// EntityMetadata is everything the execution layer needs to persist one
// data-model type. It is immutable once resolved.
type EntityMetadata struct {
	entity    string
	typ       reflect.Type
	id        IDField
	tableName string
	config    TableConfig
}

// EntityName returns the registered entity name.
func (m *EntityMetadata) EntityName() string { return m.entity }

// Type returns the data-model type.
func (m *EntityMetadata) Type() reflect.Type { return m.typ }

// IDField returns the descriptor of the key field.
func (m *EntityMetadata) IDField() registry.FieldDescriptor { return m.id.Field }

// IDColumn returns the stored attribute name of the key.
func (m *EntityMetadata) IDColumn() string { return m.id.Field.ColumnName() }

// IDType returns the declared Go type of the key field.
func (m *EntityMetadata) IDType() reflect.Type { return m.id.Field.Type }

// IDWireType returns the wire type of the key.
func (m *EntityMetadata) IDWireType() wiretype.WireType { return m.id.WireType }

// AutoGeneratedID reports whether the service generates keys.
func (m *EntityMetadata) AutoGeneratedID() bool { return m.id.Generated }

// TableName returns the resolved table name.
func (m *EntityMetadata) TableName() string { return m.tableName }

// TableLimits returns the fully populated limits, filling unset values from
// defaults. A nil defaults uses storagemodels.BuiltinDefaults. The second
// result is false when the entity declared no limits.
func (m *EntityMetadata) TableLimits(defaults storagemodels.DefaultsProvider) (storagemodels.TableLimits, bool) {
	return m.config.Limits(defaults)
}

// DeclaredLimits returns a copy of the declared limits, nil when the entity
// uses store defaults or declared none.
func (m *EntityMetadata) DeclaredLimits() *storagemodels.DeclaredLimits {
	return m.config.Declared.Clone()
}

// UsesDefaultLimits reports whether the entity declared no table configuration.
func (m *EntityMetadata) UsesDefaultLimits() bool { return m.config.UseDefaults }

// Consistency returns the default read consistency.
func (m *EntityMetadata) Consistency() storagemodels.Consistency { return m.config.Consistency }

// Durability returns the default write durability.
func (m *EntityMetadata) Durability() storagemodels.Durability { return m.config.Durability }

// TimeoutMillis returns the operation timeout; 0 means the service default.
func (m *EntityMetadata) TimeoutMillis() int { return m.config.TimeoutMillis }

// Timeout returns TimeoutMillis as a duration.
func (m *EntityMetadata) Timeout() time.Duration {
	return time.Duration(m.config.TimeoutMillis) * time.Millisecond
}

// AutoCreateTable reports whether the table should be created on bootstrap.
func (m *EntityMetadata) AutoCreateTable() bool { return m.config.AutoCreateTable }

// ID reads the key of entity.
func (m *EntityMetadata) ID(entity any) (any, error) {
	v, err := m.id.Field.Get(entity)
	if err != nil {
		return nil, fmt.Errorf("reading id of %s: %w", m.entity, err)
	}
	return v, nil
}

// SetID writes the key of entity, which must be a pointer.
func (m *EntityMetadata) SetID(entity any, value any) error {
	if err := m.id.Field.Set(entity, value); err != nil {
		return fmt.Errorf("setting id of %s: %w", m.entity, err)
	}
	return nil
}

// Options configures Resolve.
type Options struct {
	Environment environment.Environment
	Parser      expression.Parser
	Logger      *slog.Logger
	// Tables overrides the descriptor table configuration, keyed by entity name.
	Tables map[string]storagemodels.TableOptions
}

// Option is a functional option for configuring Resolve
type Option func(*Options)

// WithEnvironment sets the environment used for table-name templates.
func WithEnvironment(env environment.Environment) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

// WithParser sets the expression parser. Defaults to expression.Default().
func WithParser(p expression.Parser) Option {
	return func(o *Options) {
		o.Parser = p
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTableOverrides replaces the table configuration of the named entities.
func WithTableOverrides(tables map[string]storagemodels.TableOptions) Option {
	return func(o *Options) {
		o.Tables = tables
	}
}

// Resolve validates desc and produces its metadata. Any failure aborts
// resolution; no partial metadata is returned.
func Resolve(desc registry.TypeDescriptor, opts ...Option) (*EntityMetadata, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Parser == nil {
		o.Parser = expression.Default()
	}

	if desc.Type == nil {
		return nil, errors.NewValidationError("type", "descriptor has no type")
	}
	if desc.Name == "" {
		desc.Name = simpleName(deref(desc.Type))
	}
	logger := o.Logger.With(slog.String("entity", desc.Name))

	table := desc.Table
	if override, ok := o.Tables[desc.Name]; ok {
		table = &override
	}

	id, err := ResolveIDField(desc)
	if err != nil {
		logFailure(logger, err)
		return nil, err
	}

	name, err := ResolveTableName(desc.Name, DefaultTableName(desc.Type), table, o.Environment, o.Parser)
	if err != nil {
		logFailure(logger, err)
		return nil, err
	}

	cfg, err := ResolveTableConfig(desc.Name, table, logger)
	if err != nil {
		logFailure(logger, err)
		return nil, err
	}

	md := &EntityMetadata{
		entity:    desc.Name,
		typ:       deref(desc.Type),
		id:        id,
		tableName: name,
		config:    cfg,
	}

	logger.Debug("resolved entity metadata",
		slog.String("table", md.tableName),
		slog.String("id", md.IDColumn()),
		slog.String("wire_type", md.id.WireType.String()),
		slog.Bool("generated", md.id.Generated))

	return md, nil
}

// For resolves the metadata of T from its registered descriptor, falling
// back to its struct tags when none is registered.
func For[T any](opts ...Option) (*EntityMetadata, error) {
	desc, ok := registry.Lookup[T]()
	if !ok {
		var err error
		desc, err = registry.FromStruct[T]()
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", errors.ErrNotRegistered, reflect.TypeFor[T](), err)
		}
	}
	return Resolve(desc, opts...)
}

func logFailure(logger *slog.Logger, err error) {
	if errors.IsInternal(err) {
		logger.Error("internal resolver error", slog.String("kind", "internal"), slog.Any("error", err))
		return
	}
	logger.Debug("entity metadata rejected", slog.Any("error", err))
}
