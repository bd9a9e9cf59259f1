/*
Package entitymeta resolves the storage metadata of data-model types for a
NoSQL table service: which field is the primary key, how that key maps to a
wire type, which table the entity lives in and how that table is configured.

Metadata is resolved once at bootstrap and cached by a Catalog:

	catalog := entitymeta.NewCatalog(
	    resolver.WithEnvironment(cfg.Environment()),
	    resolver.WithTableOverrides(cfg.Tables),
	)
	md := entitymeta.MustResolve[Order](catalog)

	md.TableName()        // "prod_orders"
	md.IDColumn()         // "order_id"
	md.AutoGeneratedID()  // true

Types describe themselves either through an explicit registry.TypeDescriptor
or through struct tags:

	type Order struct {
	    OrderID int64  `dynamodbav:"order_id" nosql:"id,generated"`
	    Region  string `dynamodbav:"region"`
	}

	func (Order) TableOptions() storagemodels.TableOptions {
	    return storagemodels.NewTableOptions(
	        storagemodels.WithTableName("${env.prefix}_orders"),
	        storagemodels.WithOnDemand(storagemodels.NotSet),
	    )
	}

A Repository couples the metadata with a datastore.DataStore:

	repo, err := entitymeta.OpenRepository(catalog, func(md *resolver.EntityMetadata) (datastore.DataStore[Order], error) {
	    return ddb.NewStore[Order](client, md, ddb.WithDefaults(cfg)), nil
	})

Subpackages:
  - registry: explicit type descriptors and struct-tag derivation
  - resolver: id field, table name and table configuration resolution
  - environment: property sources and ${key:default} placeholders
  - expression: cached #{...} CEL table-name expressions
  - storagemodels: table options, capacity limits and enumerations
  - wiretype: mapping of key types to wire types
  - config: YAML store configuration with .env and environment overrides
  - datastore: DataStore interface, DynamoDB store and in-memory mock
*/
package entitymeta
