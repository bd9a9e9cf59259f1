/*
Package registry describes data-model types for metadata resolution.

A TypeDescriptor lists the fields of a type that may act as keys, their id
designations and the optional per-entity table configuration. Descriptors are
either written explicitly or derived from struct tags.

Explicit descriptors:

	registry.MustRegister(registry.Describe[Order](
	    registry.MutableField("OrderID",
	        func(o *Order) int64 { return o.OrderID },
	        func(o *Order, v int64) { o.OrderID = v },
	    ).KeyID(true),
	).WithTable(storagemodels.WithTableName("${env.prefix}_orders")))

Struct tags:

	type Customer struct {
	    Email string `dynamodbav:"email" entity:"id"`
	    Name  string `dynamodbav:"name"`
	}

	desc, err := registry.FromStruct[Customer]()

The store-specific marker is written as `nosql:"id"` or `nosql:"id,generated"`.
Column names come from the dynamodbav tag, then the json tag, then the field
name. Types implementing TableConfigurer supply their own table options.

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
