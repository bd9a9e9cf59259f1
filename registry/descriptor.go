/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"

	"github.com/suparena/entitymeta/storagemodels"
)

// IDMarker records which id designations a field carries. A field may carry
// both, which the resolver rejects as conflicting.
type IDMarker uint8

const (
	// NoMarker means the field is not designated as a key.
	NoMarker IDMarker = 0
	// GenericID is the framework-level id designation.
	GenericID IDMarker = 1 << iota
	// StoreID is the store-specific id designation, which may request generation.
	StoreID
)

// Has reports whether m includes every designation in other.
func (m IDMarker) Has(other IDMarker) bool {
	return other != NoMarker && m&other == other
}

// FieldDescriptor describes one field of a data-model type.
type FieldDescriptor struct {
	// Name is the Go field name.
	Name string
	// Column is the stored attribute name; empty means Name.
	Column string
	// Type is the declared Go type of the field.
	Type reflect.Type
	// Marker holds the id designations carried by the field.
	Marker IDMarker
	// Generated requests server-side key generation. Only meaningful with StoreID.
	Generated bool

	get func(entity any) (any, error)
	set func(entity any, value any) error
}

// ColumnName returns the stored attribute name.
func (f FieldDescriptor) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// ID adds the generic id marker.
func (f FieldDescriptor) ID() FieldDescriptor {
	f.Marker |= GenericID
	return f
}

// KeyID adds the store-specific id marker.
func (f FieldDescriptor) KeyID(generated bool) FieldDescriptor {
	f.Marker |= StoreID
	f.Generated = generated
	return f
}

// As sets the stored attribute name.
func (f FieldDescriptor) As(column string) FieldDescriptor {
	f.Column = column
	return f
}

// Get reads the field from entity, which may be a value or a pointer.
func (f FieldDescriptor) Get(entity any) (any, error) {
	if f.get == nil {
		return nil, fmt.Errorf("field %s has no accessor", f.Name)
	}
	return f.get(entity)
}

// Settable reports whether Set is supported.
func (f FieldDescriptor) Settable() bool {
	return f.set != nil
}

// Set writes value into the field of entity, which must be a pointer.
func (f FieldDescriptor) Set(entity any, value any) error {
	if f.set == nil {
		return fmt.Errorf("field %s is read-only", f.Name)
	}
	return f.set(entity, value)
}

// Field describes a read-only field of T of type V.
func Field[T, V any](name string, get func(*T) V) FieldDescriptor {
	return FieldDescriptor{
		Name: name,
		Type: reflect.TypeFor[V](),
		get: func(entity any) (any, error) {
			ptr, err := entityPointer[T](entity)
			if err != nil {
				return nil, err
			}
			return get(ptr), nil
		},
	}
}

// MutableField describes a field of T of type V that can also be written,
// which is required for generated keys to be assigned.
func MutableField[T, V any](name string, get func(*T) V, set func(*T, V)) FieldDescriptor {
	f := Field(name, get)
	f.set = func(entity any, value any) error {
		ptr, ok := entity.(*T)
		if !ok {
			return fmt.Errorf("set %s: expected %v, got %T", name, reflect.TypeFor[*T](), entity)
		}
		v, err := convertTo(value, reflect.TypeFor[V]())
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
		set(ptr, v.Interface().(V))
		return nil
	}
	return f
}

func entityPointer[T any](entity any) (*T, error) {
	switch e := entity.(type) {
	case *T:
		if e == nil {
			return nil, fmt.Errorf("nil %v", reflect.TypeFor[*T]())
		}
		return e, nil
	case T:
		return &e, nil
	}
	return nil, fmt.Errorf("expected %v, got %T", reflect.TypeFor[T](), entity)
}

func convertTo(value any, target reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return reflect.Zero(target), nil
	}
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}
	if convertible(rv, target) {
		return rv.Convert(target), nil
	}
	// Boxed keys: wrap the converted value in a new pointer.
	if target.Kind() == reflect.Pointer && rv.Kind() != reflect.Pointer && convertible(rv, target.Elem()) {
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(rv.Convert(target.Elem()))
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %v to %v", rv.Type(), target)
}

// convertible rejects integer to string conversions, which reflect performs
// as runes.
func convertible(rv reflect.Value, target reflect.Type) bool {
	if target.Kind() == reflect.String && rv.Kind() != reflect.String {
		return false
	}
	return rv.CanConvert(target)
}

// TypeDescriptor is the explicit description of a data-model type: its fields,
// their id markers and its optional table configuration.
type TypeDescriptor struct {
	// Type is the data-model type.
	Type reflect.Type
	// Name is the entity name; defaults to the simple type name.
	Name string
	// Fields lists the fields that can act as keys.
	Fields []FieldDescriptor
	// Table is the per-entity table configuration; nil means store defaults.
	Table *storagemodels.TableOptions
}

// Describe builds a descriptor for T from explicit field descriptions.
//
//	desc := registry.Describe[Order](
//	    registry.Field("OrderID", func(o *Order) int64 { return o.OrderID }).KeyID(true),
//	    registry.Field("Region", func(o *Order) string { return o.Region }),
//	).WithTable(storagemodels.WithTableName("${env.prefix}_orders"))
func Describe[T any](fields ...FieldDescriptor) TypeDescriptor {
	t := reflect.TypeFor[T]()
	return TypeDescriptor{
		Type:   t,
		Name:   simpleName(t),
		Fields: fields,
	}
}

// WithName overrides the entity name.
func (d TypeDescriptor) WithName(name string) TypeDescriptor {
	d.Name = name
	return d
}

// WithTable attaches a table configuration built from opts on top of the
// default table options.
func (d TypeDescriptor) WithTable(opts ...storagemodels.TableOption) TypeDescriptor {
	o := storagemodels.NewTableOptions(opts...)
	d.Table = &o
	return d
}

// WithTableOptions attaches a complete table configuration.
func (d TypeDescriptor) WithTableOptions(o storagemodels.TableOptions) TypeDescriptor {
	d.Table = &o
	return d
}

// Field returns the field with the given Go name.
func (d TypeDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

func simpleName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
