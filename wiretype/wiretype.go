/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package wiretype maps Go key types to the value types used when encoding a
// primary key for the table service.
package wiretype

import (
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"github.com/suparena/entitymeta/errors"
)

// WireType is the value-type tag of an encoded key.
type WireType int

const (
	Unknown WireType = iota
	String
	Integer
	Long
	Double
	Number
	Timestamp
)

var names = [...]string{
	Unknown:   "UNKNOWN",
	String:    "STRING",
	Integer:   "INTEGER",
	Long:      "LONG",
	Double:    "DOUBLE",
	Number:    "NUMBER",
	Timestamp: "TIMESTAMP",
}

func (w WireType) String() string {
	if w < 0 || int(w) >= len(names) {
		return "WireType(" + strconv.Itoa(int(w)) + ")"
	}
	return names[w]
}

// KeyKind returns the DynamoDB scalar attribute type a key of this wire type is
// stored as. Timestamps are stored as RFC 3339 strings.
func (w WireType) KeyKind() types.ScalarAttributeType {
	switch w {
	case Integer, Long, Double, Number:
		return types.ScalarAttributeTypeN
	default:
		return types.ScalarAttributeTypeS
	}
}

// byType holds the supported struct and pointer key types that are matched by
// identity rather than by kind.
var byType = map[reflect.Type]WireType{
	reflect.TypeFor[big.Int]():         Number,
	reflect.TypeFor[big.Float]():       Number,
	reflect.TypeFor[decimal.Decimal](): Number,
	reflect.TypeFor[time.Time]():       Timestamp,
	reflect.TypeFor[strfmt.DateTime](): Timestamp,
	reflect.TypeFor[strfmt.Date]():     Timestamp,
}

func lookup(t reflect.Type) (WireType, bool) {
	if t == nil {
		return Unknown, false
	}
	// A single pointer level plays the role of a boxed value.
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if w, ok := byType[t]; ok {
		return w, true
	}
	switch t.Kind() {
	case reflect.String:
		return String, true
	case reflect.Int32:
		return Integer, true
	case reflect.Int64:
		return Long, true
	case reflect.Int:
		if strconv.IntSize == 32 {
			return Integer, true
		}
		return Long, true
	case reflect.Float32, reflect.Float64:
		return Double, true
	}
	return Unknown, false
}

// Supported reports whether t may be declared as the type of an id field.
func Supported(t reflect.Type) bool {
	_, ok := lookup(t)
	return ok
}

// Of returns the wire type for a supported key type. Callers are expected to
// have checked Supported first, so a miss is reported as an internal error.
func Of(t reflect.Type) (WireType, error) {
	w, ok := lookup(t)
	if !ok {
		return Unknown, errors.NewInternalError("", "no wire type mapping for %v", t)
	}
	return w, nil
}

// Generatable reports whether the service can generate keys of this wire type.
func Generatable(w WireType) bool {
	switch w {
	case Long, Integer, Number, String:
		return true
	}
	return false
}
