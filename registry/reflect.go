/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/entitymeta/storagemodels"
)

// Struct tags read by FromStruct.
const (
	// StoreTag carries the store-specific id marker: `nosql:"id"` or `nosql:"id,generated"`.
	StoreTag = "nosql"
	// GenericTag carries the generic id marker: `entity:"id"`.
	GenericTag = "entity"
)

// TableConfigurer is implemented by data-model types that declare their own
// table configuration.
type TableConfigurer interface {
	TableOptions() storagemodels.TableOptions
}

// FromStruct derives a descriptor for T from its struct tags. It is a
// convenience for types that do not register an explicit descriptor.
func FromStruct[T any]() (TypeDescriptor, error) {
	return FromType(reflect.TypeFor[T]())
}

// FromType derives a descriptor from the struct tags of t. Pointer types are
// described by their element. Slice and array types have no fields of their own.
func FromType(t reflect.Type) (TypeDescriptor, error) {
	if t == nil {
		return TypeDescriptor{}, fmt.Errorf("nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	desc := TypeDescriptor{Type: t, Name: simpleName(t)}
	if cfg, ok := tableConfigurer(t); ok {
		opts := cfg.TableOptions()
		desc.Table = &opts
	}

	switch t.Kind() {
	case reflect.Struct:
	case reflect.Slice, reflect.Array:
		return desc, nil
	default:
		return TypeDescriptor{}, fmt.Errorf("entity must be a struct, got %s", t.Kind())
	}

	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		column := getTagName(field)
		if column == "-" {
			continue
		}

		fd := FieldDescriptor{
			Name:   field.Name,
			Column: column,
			Type:   field.Type,
			get:    reflectGetter(field.Index),
			set:    reflectSetter(t, field.Index, field.Type),
		}
		if tag, ok := field.Tag.Lookup(StoreTag); ok {
			if name, opts := parseTag(tag); name == "id" {
				fd = fd.KeyID(hasOption(opts, "generated"))
			}
		}
		if tag, ok := field.Tag.Lookup(GenericTag); ok {
			if name, _ := parseTag(tag); name == "id" {
				fd = fd.ID()
			}
		}
		desc.Fields = append(desc.Fields, fd)
	}

	return desc, nil
}

func tableConfigurer(t reflect.Type) (TableConfigurer, bool) {
	target := reflect.TypeFor[TableConfigurer]()
	switch {
	case t.Implements(target):
		cfg, ok := reflect.Zero(t).Interface().(TableConfigurer)
		return cfg, ok
	case reflect.PointerTo(t).Implements(target):
		cfg, ok := reflect.New(t).Interface().(TableConfigurer)
		return cfg, ok
	}
	return nil, false
}

func reflectGetter(index []int) func(any) (any, error) {
	return func(entity any) (any, error) {
		v := reflect.ValueOf(entity)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, fmt.Errorf("nil entity")
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected struct, got %s", v.Kind())
		}
		fv, err := v.FieldByIndexErr(index)
		if err != nil {
			return nil, err
		}
		return fv.Interface(), nil
	}
}

func reflectSetter(owner reflect.Type, index []int, fieldType reflect.Type) func(any, any) error {
	return func(entity any, value any) error {
		v := reflect.ValueOf(entity)
		if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Type() != owner {
			return fmt.Errorf("expected *%v, got %T", owner, entity)
		}
		fv, err := v.Elem().FieldByIndexErr(index)
		if err != nil {
			return err
		}
		converted, err := convertTo(value, fieldType)
		if err != nil {
			return err
		}
		fv.Set(converted)
		return nil
	}
}

// getTagName extracts the column name from the dynamodbav or json tag.
func getTagName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("dynamodbav"); ok {
		if name, _ := parseTag(tag); name != "" {
			return name
		}
	}
	if tag, ok := field.Tag.Lookup("json"); ok {
		if name, _ := parseTag(tag); name != "" {
			return name
		}
	}
	return field.Name
}

// parseTag splits a tag value like "id,generated" into its name and options.
func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return strings.TrimSpace(parts[0]), parts[1:]
}

func hasOption(opts []string, want string) bool {
	for _, o := range opts {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}
