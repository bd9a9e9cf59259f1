/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	"strings"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
	"github.com/suparena/entitymeta/wiretype"
)

// ReservedColumn is the column holding the raw document. No key may use it.
const ReservedColumn = "kv_json_"

// fallbackIDField is the field used as key when no field carries a marker.
const fallbackIDField = "id"

// IDField is the validated primary-key field of an entity.
type IDField struct {
	Field     registry.FieldDescriptor
	WireType  wiretype.WireType
	Generated bool
}

// ResolveIDField selects and validates the single key field of desc.
//
// At most one field may carry the generic marker and at most one the
// store-specific marker, and the two kinds may not be mixed. Without any
// marker a field named id, matched case-insensitively, is used.
func ResolveIDField(desc registry.TypeDescriptor) (IDField, error) {
	entity := desc.Name

	var generic, store []registry.FieldDescriptor
	for _, f := range desc.Fields {
		if f.Marker.Has(registry.GenericID) {
			generic = append(generic, f)
		}
		if f.Marker.Has(registry.StoreID) {
			store = append(store, f)
		}
	}

	var (
		selected  registry.FieldDescriptor
		found     bool
		generated bool
	)
	switch len(generic) {
	case 0:
		selected, found = fieldNamedID(desc.Fields)
	case 1:
		selected, found = generic[0], true
	default:
		return IDField{}, errors.NewMetadataError(entity, errors.ErrMultipleIDFields,
			"only one field can carry the generic id marker, found %s", fieldNames(generic))
	}

	switch len(store) {
	case 0:
	case 1:
		selected, found = store[0], true
		generated = store[0].Generated
	default:
		return IDField{}, errors.NewMetadataError(entity, errors.ErrMultipleIDFields,
			"only one field can carry the store id marker, found %s", fieldNames(store))
	}

	if len(generic) > 0 && len(store) > 0 {
		return IDField{}, errors.NewMetadataError(entity, errors.ErrConflictingIDMarkers,
			"only one of the generic or store id markers can be used, found %s and %s",
			fieldNames(generic), fieldNames(store))
	}

	if !found {
		return IDField{}, errors.NewMetadataError(entity, errors.ErrMissingIDField,
			"entity should contain an id-marked field or a field named %s", fallbackIDField)
	}

	if selected.ColumnName() == ReservedColumn {
		return IDField{}, errors.NewMetadataError(entity, errors.ErrReservedFieldName,
			"id field %s can not be stored as %q", selected.Name, ReservedColumn)
	}

	if !wiretype.Supported(selected.Type) {
		return IDField{}, errors.NewMetadataError(entity, errors.ErrUnsupportedIDType,
			"field %s has type %v", selected.Name, selected.Type)
	}

	wt, err := wiretype.Of(selected.Type)
	if err != nil {
		return IDField{}, errors.NewInternalError(entity, "id field %s: %v", selected.Name, err)
	}

	if generated && !wiretype.Generatable(wt) {
		return IDField{}, errors.NewMetadataError(entity, errors.ErrInvalidGeneratedIDType,
			"field %s of wire type %s can not be generated", selected.Name, wt)
	}

	return IDField{Field: selected, WireType: wt, Generated: generated}, nil
}

// fieldNamedID prefers an exact match over a case-insensitive one.
func fieldNamedID(fields []registry.FieldDescriptor) (registry.FieldDescriptor, bool) {
	var (
		fold  registry.FieldDescriptor
		found bool
	)
	for _, f := range fields {
		if f.Name == fallbackIDField {
			return f, true
		}
		if !found && strings.EqualFold(f.Name, fallbackIDField) {
			fold, found = f, true
		}
	}
	return fold, found
}

func fieldNames(fields []registry.FieldDescriptor) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}
