/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	"log/slog"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/storagemodels"
)

// TableConfig is the validated per-entity table configuration.
type TableConfig struct {
	// UseDefaults is set when the entity declared no table configuration.
	// Limits then come entirely from the defaults provider.
	UseDefaults bool
	// Declared holds the declared limits, nil when none apply.
	Declared *storagemodels.DeclaredLimits

	Consistency     storagemodels.Consistency
	Durability      storagemodels.Durability
	TimeoutMillis   int
	AutoCreateTable bool
}

// Limits returns the limits handed to the execution layer, filling unset
// values from defaults. The second result is false when no limits apply.
func (c TableConfig) Limits(defaults storagemodels.DefaultsProvider) (storagemodels.TableLimits, bool) {
	if c.UseDefaults {
		return storagemodels.DefaultLimits(defaults), true
	}
	return storagemodels.ResolveLimits(c.Declared, defaults)
}

// ResolveTableConfig validates opts. A nil opts means the entity uses the
// store defaults. Unknown durability tokens fall back to COMMIT_NO_SYNC and
// are logged; unknown consistency tokens and negative timeouts are rejected.
func ResolveTableConfig(entity string, opts *storagemodels.TableOptions, logger *slog.Logger) (TableConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if opts == nil {
		return TableConfig{
			UseDefaults:     true,
			Consistency:     storagemodels.Eventual,
			Durability:      storagemodels.CommitNoSync,
			TimeoutMillis:   storagemodels.DefaultTimeoutMillis,
			AutoCreateTable: true,
		}, nil
	}

	switch opts.CapacityMode {
	case storagemodels.CapacityUnset, storagemodels.Provisioned, storagemodels.OnDemand:
	default:
		return TableConfig{}, errors.NewMetadataError(entity, errors.ErrInvalidCapacityMode,
			"capacity mode %d", int(opts.CapacityMode))
	}

	consistency, err := storagemodels.ParseConsistency(opts.Consistency)
	if err != nil {
		return TableConfig{}, errors.NewMetadataError(entity, errors.ErrInvalidConsistency,
			"%q, expected EVENTUAL or ABSOLUTE", opts.Consistency)
	}

	durability, recognized := storagemodels.ParseDurability(opts.Durability)
	if !recognized {
		logger.Warn("unrecognized durability token, using COMMIT_NO_SYNC",
			slog.String("entity", entity),
			slog.String("durability", opts.Durability))
	}

	if opts.TimeoutMillis < 0 {
		return TableConfig{}, errors.NewMetadataError(entity, errors.ErrInvalidTimeout,
			"timeout cannot be a negative value: %d", opts.TimeoutMillis)
	}

	return TableConfig{
		Declared:        storagemodels.Declare(*opts),
		Consistency:     consistency,
		Durability:      durability,
		TimeoutMillis:   opts.TimeoutMillis,
		AutoCreateTable: opts.AutoCreateTable,
	}, nil
}
