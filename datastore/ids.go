/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"fmt"
	"math/big"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
	"github.com/suparena/entitymeta/wiretype"
)

// IDGenerator produces keys for entities whose metadata requests generation.
// String keys are random UUIDs; numeric keys come from a sequence.
type IDGenerator struct {
	seq atomic.Int64
}

// NewIDGenerator creates a generator whose numeric sequence continues after start.
func NewIDGenerator(start int64) *IDGenerator {
	g := &IDGenerator{}
	g.seq.Store(start)
	return g
}

// Generate returns a new key for the given wire type and declared type.
func (g *IDGenerator) Generate(w wiretype.WireType, declared reflect.Type) (any, error) {
	switch w {
	case wiretype.String:
		return uuid.NewString(), nil
	case wiretype.Integer, wiretype.Long:
		return g.seq.Add(1), nil
	case wiretype.Number:
		n := g.seq.Add(1)
		ptr := declared.Kind() == reflect.Pointer
		base := declared
		if ptr {
			base = base.Elem()
		}
		switch base {
		case reflect.TypeFor[big.Int]():
			if ptr {
				return big.NewInt(n), nil
			}
			return *big.NewInt(n), nil
		case reflect.TypeFor[big.Float]():
			if ptr {
				return new(big.Float).SetInt64(n), nil
			}
			return *new(big.Float).SetInt64(n), nil
		case reflect.TypeFor[decimal.Decimal]():
			return decimal.NewFromInt(n), nil
		}
	}
	return nil, fmt.Errorf("cannot generate keys of wire type %s for %v", w, declared)
}

// PrepareKey returns the key of entity. When md requests generated keys and
// the entity has none, a key is generated and assigned first.
func PrepareKey(md *resolver.EntityMetadata, entity any, gen *IDGenerator) (id any, generated bool, err error) {
	id, err = md.ID(entity)
	if err != nil {
		return nil, false, err
	}
	if !IsZeroID(id) {
		return id, false, nil
	}
	if !md.AutoGeneratedID() {
		return nil, false, errors.NewValidationError(md.IDColumn(), "key is required")
	}

	value, err := gen.Generate(md.IDWireType(), md.IDType())
	if err != nil {
		return nil, false, err
	}
	if err := md.SetID(entity, value); err != nil {
		return nil, false, err
	}
	id, err = md.ID(entity)
	if err != nil {
		return nil, false, err
	}
	return id, true, nil
}

// IsZeroID reports whether id is nil, a nil pointer or a zero value.
func IsZeroID(id any) bool {
	if id == nil {
		return true
	}
	v := reflect.ValueOf(id)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.IsZero()
	}
	if b, ok := v.Interface().(big.Int); ok {
		return b.Sign() == 0
	}
	return v.IsZero()
}

// KeyString renders a key as a stable string. Timestamps use RFC 3339 with
// nanoseconds.
func KeyString(id any) string {
	if id == nil {
		return ""
	}
	v := reflect.ValueOf(id)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch k := v.Interface().(type) {
	case time.Time:
		return k.UTC().Format(time.RFC3339Nano)
	case strfmt.DateTime:
		return time.Time(k).UTC().Format(time.RFC3339Nano)
	case strfmt.Date:
		return k.String()
	case big.Int:
		return k.String()
	case big.Float:
		return k.Text('g', -1)
	case decimal.Decimal:
		return k.String()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	}
	return fmt.Sprint(v.Interface())
}
