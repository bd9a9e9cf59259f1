/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"gopkg.in/yaml.v3"
)

// NotSet marks a capacity value that was not configured and is filled from the
// store-wide defaults when limits are requested.
const NotSet = -1

// DefaultTimeoutMillis means "use the service default timeout".
const DefaultTimeoutMillis = 0

// TableOptions is the per-entity table configuration.
type TableOptions struct {
	TableName       string       `yaml:"tableName,omitempty"`       // Name template; empty means the type name
	CapacityMode    CapacityMode `yaml:"capacityMode,omitempty"`    // PROVISIONED, ON_DEMAND or UNSET
	ReadUnits       int          `yaml:"readUnits"`                 // NotSet fills from defaults
	WriteUnits      int          `yaml:"writeUnits"`                // NotSet fills from defaults
	StorageGB       int          `yaml:"storageGB"`                 // >0 or NotSet, anything else disables limits
	Consistency     string       `yaml:"consistency,omitempty"`     // EVENTUAL or ABSOLUTE
	Durability      string       `yaml:"durability,omitempty"`      // COMMIT_SYNC, COMMIT_WRITE_NO_SYNC or COMMIT_NO_SYNC
	TimeoutMillis   int          `yaml:"timeoutMillis,omitempty"`   // 0 uses the service default
	AutoCreateTable bool         `yaml:"autoCreateTable"`           // Create the table on bootstrap
}

// TableOption is a functional option for configuring TableOptions
type TableOption func(*TableOptions)

// DefaultTableOptions returns the options an entity gets when it declares a
// table configuration without overriding anything.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		CapacityMode:    Provisioned,
		ReadUnits:       NotSet,
		WriteUnits:      NotSet,
		StorageGB:       NotSet,
		Consistency:     Eventual.String(),
		Durability:      CommitNoSync.String(),
		TimeoutMillis:   DefaultTimeoutMillis,
		AutoCreateTable: true,
	}
}

// NewTableOptions applies opts on top of DefaultTableOptions.
func NewTableOptions(opts ...TableOption) TableOptions {
	o := DefaultTableOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UnmarshalYAML starts from DefaultTableOptions so omitted keys keep their
// defaults instead of Go zero values.
func (o *TableOptions) UnmarshalYAML(node *yaml.Node) error {
	type plain TableOptions
	decoded := plain(DefaultTableOptions())
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*o = TableOptions(decoded)
	return nil
}

// WithTableName sets the table name template
func WithTableName(name string) TableOption {
	return func(opts *TableOptions) {
		opts.TableName = name
	}
}

// WithProvisioned sets provisioned capacity
func WithProvisioned(readUnits, writeUnits, storageGB int) TableOption {
	return func(opts *TableOptions) {
		opts.CapacityMode = Provisioned
		opts.ReadUnits = readUnits
		opts.WriteUnits = writeUnits
		opts.StorageGB = storageGB
	}
}

// WithOnDemand sets on-demand capacity
func WithOnDemand(storageGB int) TableOption {
	return func(opts *TableOptions) {
		opts.CapacityMode = OnDemand
		opts.StorageGB = storageGB
	}
}

// WithCapacityMode sets the capacity mode only
func WithCapacityMode(mode CapacityMode) TableOption {
	return func(opts *TableOptions) {
		opts.CapacityMode = mode
	}
}

// WithStorageGB sets the storage size only
func WithStorageGB(storageGB int) TableOption {
	return func(opts *TableOptions) {
		opts.StorageGB = storageGB
	}
}

// WithConsistency sets the consistency token
func WithConsistency(token string) TableOption {
	return func(opts *TableOptions) {
		opts.Consistency = token
	}
}

// WithDurability sets the durability token
func WithDurability(token string) TableOption {
	return func(opts *TableOptions) {
		opts.Durability = token
	}
}

// WithTimeoutMillis sets the request timeout
func WithTimeoutMillis(ms int) TableOption {
	return func(opts *TableOptions) {
		opts.TimeoutMillis = ms
	}
}

// WithAutoCreateTable sets whether the table is created on bootstrap
func WithAutoCreateTable(create bool) TableOption {
	return func(opts *TableOptions) {
		opts.AutoCreateTable = create
	}
}
