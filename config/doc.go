/*
Package config loads the store-wide configuration.

A StoreConfig is read from YAML and may be overridden from .env files and
ENTITYMETA_* environment variables:

	region: eu-west-1
	defaults:
	  mode: PROVISIONED
	  readUnits: 100
	  writeUnits: 50
	  storageGB: 25
	properties:
	  env.prefix: eu
	tables:
	  Order:
	    tableName: ${env.prefix}_orders
	    capacityMode: ON_DEMAND
	    storageGB: 10

StoreConfig implements storagemodels.DefaultsProvider and its Environment
method feeds table-name templates.
*/
package config
