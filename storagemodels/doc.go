/*
Package storagemodels defines the data structures shared by the resolver, the
configuration loader and the datastores.

Key Types:

TableOptions:
Per-entity table configuration, built with functional options on top of
DefaultTableOptions:

	opts := storagemodels.NewTableOptions(
	    storagemodels.WithTableName("${env.prefix}_orders"),
	    storagemodels.WithProvisioned(100, 20, storagemodels.NotSet),
	    storagemodels.WithConsistency("ABSOLUTE"),
	    storagemodels.WithDurability("COMMIT_SYNC"),
	    storagemodels.WithTimeoutMillis(2000),
	)

DeclaredLimits and TableLimits:
Capacity is resolved in two phases. Declare captures what the entity declared,
leaving NotSet values empty; ResolveLimits combines that with a DefaultsProvider
and returns a fully populated TableLimits without touching the declared value:

	declared := storagemodels.Declare(opts)
	limits, ok := storagemodels.ResolveLimits(declared, storeConfig)

Enumerations:
ParseConsistency is strict and rejects unknown tokens. DurabilityOf is lenient
and maps every unknown token to COMMIT_NO_SYNC.
*/
package storagemodels
