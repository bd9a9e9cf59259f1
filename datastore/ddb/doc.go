/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

Store[T] translates resolved entity metadata into DynamoDB requests:
  - the id column becomes the hash key, typed N or S by the key wire type
  - provisioned limits become provisioned throughput, everything else
    pay-per-request billing
  - ABSOLUTE consistency becomes consistent reads
  - generated keys are written with an attribute_not_exists condition
  - the entity timeout bounds every request

	client, err := ddb.NewClient(ctx, storeConfig, ddb.Credentials{})
	store := ddb.NewStore[Order](client, md, ddb.WithDefaults(storeConfig))
	if err := store.EnsureTable(ctx); err != nil {
	    return err
	}
	err = store.Put(ctx, &Order{Region: "eu"})

The request builders (CreateTableInput, GetItemInput, PutItemInput,
DeleteItemInput) are exported for callers that drive the client themselves.
*/
package ddb
