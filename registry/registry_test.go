/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/storagemodels"
)

type order struct {
	OrderID int64
	Region  string
}

type customer struct {
	Email string `dynamodbav:"email" entity:"id"`
	Name  string `json:"name,omitempty"`
	Notes string `dynamodbav:"-"`
	age   int
}

type ticket struct {
	Serial string `nosql:"id,generated" json:"serial"`
	Title  string
}

type both struct {
	Key string `nosql:"id" entity:"id"`
}

type configured struct {
	ID string
}

func (configured) TableOptions() storagemodels.TableOptions {
	return storagemodels.NewTableOptions(storagemodels.WithTableName("configured_tbl"))
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

func TestRegisterAndLookup(t *testing.T) {
	withCleanRegistry(t)

	desc := Describe[order](
		Field("OrderID", func(o *order) int64 { return o.OrderID }).KeyID(true),
	)
	require.NoError(t, Register(desc))

	got, ok := Lookup[order]()
	require.True(t, ok)
	assert.Equal(t, "order", got.Name)
	assert.Len(t, got.Fields, 1)

	got, ok = Lookup[*order]()
	require.True(t, ok, "pointer types resolve to their element")
	assert.Equal(t, reflect.TypeFor[order](), got.Type)

	byNameDesc, err := LookupName("order")
	require.NoError(t, err)
	assert.Equal(t, got.Type, byNameDesc.Type)

	_, err = LookupName("missing")
	assert.ErrorIs(t, err, errors.ErrNotRegistered)
}

func TestRegisterDuplicate(t *testing.T) {
	withCleanRegistry(t)

	require.NoError(t, Register(Describe[order]()))

	err := Register(Describe[order]())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	err = Register(Describe[customer]().WithName("order"))
	require.Error(t, err, "entity names must be unique")

	assert.Panics(t, func() { MustRegister(Describe[order]()) })
}

func TestRegistered(t *testing.T) {
	withCleanRegistry(t)

	MustRegister(Describe[ticket]())
	MustRegister(Describe[customer]())
	MustRegister(Describe[order]())

	var names []string
	for _, d := range Registered() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"customer", "order", "ticket"}, names)
}

func TestRegisterConcurrent(t *testing.T) {
	withCleanRegistry(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- Register(Describe[order]())
			_, _ = Lookup[order]()
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestFieldAccessors(t *testing.T) {
	f := MutableField("OrderID",
		func(o *order) int64 { return o.OrderID },
		func(o *order, v int64) { o.OrderID = v },
	).KeyID(true).As("order_id")

	assert.Equal(t, "order_id", f.ColumnName())
	assert.True(t, f.Marker.Has(StoreID))
	assert.False(t, f.Marker.Has(GenericID))
	assert.True(t, f.Generated)
	assert.True(t, f.Settable())

	o := order{OrderID: 7}
	v, err := f.Get(o)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = f.Get(&o)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	require.NoError(t, f.Set(&o, int32(42)))
	assert.Equal(t, int64(42), o.OrderID)

	assert.Error(t, f.Set(o, int64(1)), "values cannot be set")
	assert.Error(t, f.Set(&o, "42"))

	_, err = f.Get(customer{})
	assert.Error(t, err)

	ro := Field("Region", func(o *order) string { return o.Region })
	assert.False(t, ro.Settable())
	assert.Error(t, ro.Set(&o, "eu"))
}

func TestSetBoxedKey(t *testing.T) {
	type boxed struct {
		ID   *int32
		Name *string
	}
	desc, err := FromStruct[boxed]()
	require.NoError(t, err)
	id, ok := desc.Field("ID")
	require.True(t, ok)
	name, ok := desc.Field("Name")
	require.True(t, ok)

	var b boxed
	require.NoError(t, id.Set(&b, int64(42)))
	require.NotNil(t, b.ID)
	assert.Equal(t, int32(42), *b.ID)

	require.NoError(t, name.Set(&b, "n"))
	assert.Equal(t, "n", *b.Name)

	assert.Error(t, name.Set(&b, int64(65)), "integers are not converted to strings")
	assert.Error(t, id.Set(&b, "42"))
}

func TestFromStruct(t *testing.T) {
	desc, err := FromStruct[customer]()
	require.NoError(t, err)
	assert.Equal(t, "customer", desc.Name)
	require.Len(t, desc.Fields, 2, "skips ignored and unexported fields")

	email, ok := desc.Field("Email")
	require.True(t, ok)
	assert.Equal(t, "email", email.ColumnName())
	assert.True(t, email.Marker.Has(GenericID))

	name, ok := desc.Field("Name")
	require.True(t, ok)
	assert.Equal(t, "name", name.ColumnName())
	assert.Equal(t, NoMarker, name.Marker)

	c := &customer{Email: "a@example.com"}
	v, err := email.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", v)
	require.NoError(t, email.Set(c, "b@example.com"))
	assert.Equal(t, "b@example.com", c.Email)
}

func TestFromStructStoreMarker(t *testing.T) {
	desc, err := FromStruct[*ticket]()
	require.NoError(t, err)

	serial, ok := desc.Field("Serial")
	require.True(t, ok)
	assert.True(t, serial.Marker.Has(StoreID))
	assert.True(t, serial.Generated)
	assert.Equal(t, "serial", serial.ColumnName())

	desc, err = FromStruct[both]()
	require.NoError(t, err)
	assert.True(t, desc.Fields[0].Marker.Has(GenericID|StoreID))
}

func TestFromStructTableConfigurer(t *testing.T) {
	desc, err := FromStruct[configured]()
	require.NoError(t, err)
	require.NotNil(t, desc.Table)
	assert.Equal(t, "configured_tbl", desc.Table.TableName)

	desc, err = FromStruct[order]()
	require.NoError(t, err)
	assert.Nil(t, desc.Table)
}

func TestFromTypeCollections(t *testing.T) {
	desc, err := FromStruct[[]order]()
	require.NoError(t, err)
	assert.Empty(t, desc.Fields)
	assert.Equal(t, reflect.TypeFor[[]order](), desc.Type)

	_, err = FromStruct[int]()
	assert.Error(t, err)

	_, err = FromType(nil)
	assert.Error(t, err)
}
