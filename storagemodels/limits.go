/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/aws"
)

// Store-wide capacity defaults used when no DefaultsProvider is available.
const (
	DefaultCapacityMode = Provisioned
	DefaultReadUnits    = 50
	DefaultWriteUnits   = 50
	DefaultStorageGB    = 1
)

// DefaultsProvider supplies store-wide capacity defaults. It is consulted
// lazily, whenever concrete limits are needed.
type DefaultsProvider interface {
	DefaultCapacityMode() CapacityMode
	DefaultReadUnits() int
	DefaultWriteUnits() int
	DefaultStorageGB() int
}

type builtinDefaults struct{}

func (builtinDefaults) DefaultCapacityMode() CapacityMode { return DefaultCapacityMode }
func (builtinDefaults) DefaultReadUnits() int             { return DefaultReadUnits }
func (builtinDefaults) DefaultWriteUnits() int            { return DefaultWriteUnits }
func (builtinDefaults) DefaultStorageGB() int             { return DefaultStorageGB }

// BuiltinDefaults is the DefaultsProvider backed by the package constants.
var BuiltinDefaults DefaultsProvider = builtinDefaults{}

// TableLimits is a fully populated capacity specification.
type TableLimits struct {
	Mode       CapacityMode `yaml:"mode"`
	ReadUnits  int          `yaml:"readUnits"`
	WriteUnits int          `yaml:"writeUnits"`
	StorageGB  int          `yaml:"storageGB"`
}

// DeclaredLimits is the capacity an entity declared. Nil fields were left
// unset and are taken from the defaults provider by ResolveLimits.
type DeclaredLimits struct {
	Mode       CapacityMode
	ReadUnits  *int
	WriteUnits *int
	StorageGB  *int
}

// Declare captures the limits described by opts. It returns nil when opts
// disable limits, i.e. when the storage size is neither positive nor NotSet.
func Declare(opts TableOptions) *DeclaredLimits {
	if opts.StorageGB <= 0 && opts.StorageGB != NotSet {
		return nil
	}
	d := &DeclaredLimits{Mode: opts.CapacityMode, StorageGB: declared(opts.StorageGB)}
	switch opts.CapacityMode {
	case OnDemand:
		d.ReadUnits = aws.Int(0)
		d.WriteUnits = aws.Int(0)
	default:
		d.ReadUnits = declared(opts.ReadUnits)
		d.WriteUnits = declared(opts.WriteUnits)
	}
	return d
}

// Clone returns a deep copy of d.
func (d *DeclaredLimits) Clone() *DeclaredLimits {
	if d == nil {
		return nil
	}
	c := *d
	c.ReadUnits = cloneInt(d.ReadUnits)
	c.WriteUnits = cloneInt(d.WriteUnits)
	c.StorageGB = cloneInt(d.StorageGB)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return aws.Int(*v)
}

func declared(v int) *int {
	if v == NotSet {
		return nil
	}
	return aws.Int(v)
}

// DefaultLimits builds limits purely from the defaults provider. On-demand
// tables only carry a storage size.
func DefaultLimits(defaults DefaultsProvider) TableLimits {
	if defaults == nil {
		defaults = BuiltinDefaults
	}
	if defaults.DefaultCapacityMode() == OnDemand {
		return TableLimits{Mode: OnDemand, StorageGB: defaults.DefaultStorageGB()}
	}
	return TableLimits{
		Mode:       Provisioned,
		ReadUnits:  defaults.DefaultReadUnits(),
		WriteUnits: defaults.DefaultWriteUnits(),
		StorageGB:  defaults.DefaultStorageGB(),
	}
}

// ResolveLimits fills every unset field of declared from defaults. It does not
// modify declared and reports false when declared is nil.
func ResolveLimits(declared *DeclaredLimits, defaults DefaultsProvider) (TableLimits, bool) {
	if declared == nil {
		return TableLimits{}, false
	}
	if defaults == nil {
		defaults = BuiltinDefaults
	}

	mode := declared.Mode
	if mode == CapacityUnset {
		mode = defaults.DefaultCapacityMode()
		if mode == CapacityUnset {
			mode = DefaultCapacityMode
		}
	}

	limits := TableLimits{
		Mode:      mode,
		StorageGB: valueOr(declared.StorageGB, defaults.DefaultStorageGB),
	}
	if mode == OnDemand {
		return limits, true
	}
	limits.ReadUnits = valueOr(declared.ReadUnits, defaults.DefaultReadUnits)
	limits.WriteUnits = valueOr(declared.WriteUnits, defaults.DefaultWriteUnits)
	return limits, true
}

func valueOr(v *int, fallback func() int) int {
	if v != nil {
		return *v
	}
	return fallback()
}
