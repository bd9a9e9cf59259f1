/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/suparena/entitymeta/environment"
	"github.com/suparena/entitymeta/storagemodels"
)

// Environment variables read by ApplyEnv.
const (
	EnvRegion       = "ENTITYMETA_REGION"
	EnvEndpoint     = "ENTITYMETA_ENDPOINT"
	EnvCapacityMode = "ENTITYMETA_CAPACITY_MODE"
	EnvReadUnits    = "ENTITYMETA_READ_UNITS"
	EnvWriteUnits   = "ENTITYMETA_WRITE_UNITS"
	EnvStorageGB    = "ENTITYMETA_STORAGE_GB"
)

// StoreConfig holds the store-wide configuration. It supplies the capacity
// defaults used to complete entity table limits.
type StoreConfig struct {
	// Region is the AWS region of the table service.
	Region string `yaml:"region,omitempty"`

	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Defaults are the store-wide capacity defaults.
	// Default: PROVISIONED, 50 read units, 50 write units, 1 GB
	Defaults storagemodels.TableLimits `yaml:"defaults"`

	// Properties are available to table-name templates.
	Properties map[string]string `yaml:"properties,omitempty"`

	// Tables overrides per-entity table options, keyed by entity name.
	Tables map[string]storagemodels.TableOptions `yaml:"tables,omitempty"`

	dotenv environment.Map
}

// DefaultStoreConfig returns the builtin defaults.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Defaults: storagemodels.TableLimits{
			Mode:       storagemodels.DefaultCapacityMode,
			ReadUnits:  storagemodels.DefaultReadUnits,
			WriteUnits: storagemodels.DefaultWriteUnits,
			StorageGB:  storagemodels.DefaultStorageGB,
		},
	}
}

// Load reads a YAML store configuration from path.
func Load(path string) (StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StoreConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return StoreConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML store configuration. Omitted values keep their defaults.
func Parse(data []byte) (StoreConfig, error) {
	cfg := DefaultStoreConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StoreConfig{}, err
	}
	cfg.validate()
	return cfg, nil
}

// ApplyEnv reads the given .env files and applies ENTITYMETA_* overrides.
// Process environment variables take precedence over .env values. The .env
// values also become part of Environment.
func (c *StoreConfig) ApplyEnv(files ...string) error {
	if len(files) > 0 {
		dotenv, err := environment.DotEnv(files...)
		if err != nil {
			return err
		}
		c.dotenv = dotenv
	}
	env := environment.Layered(environment.OS(), c.dotenv)

	if v, ok := env.Lookup(EnvRegion); ok {
		c.Region = v
	}
	if v, ok := env.Lookup(EnvEndpoint); ok {
		c.Endpoint = v
	}
	if v, ok := env.Lookup(EnvCapacityMode); ok {
		mode, err := storagemodels.ParseCapacityMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCapacityMode, err)
		}
		c.Defaults.Mode = mode
	}
	for name, dst := range map[string]*int{
		EnvReadUnits:  &c.Defaults.ReadUnits,
		EnvWriteUnits: &c.Defaults.WriteUnits,
		EnvStorageGB:  &c.Defaults.StorageGB,
	} {
		v, ok := env.Lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	c.validate()
	return nil
}

// Environment returns the environment for table-name templates: the
// configured properties, then .env values, then the process environment.
func (c StoreConfig) Environment() environment.Environment {
	return environment.Layered(environment.Map(c.Properties), c.dotenv, environment.OS())
}

// DefaultCapacityMode implements storagemodels.DefaultsProvider.
func (c StoreConfig) DefaultCapacityMode() storagemodels.CapacityMode { return c.Defaults.Mode }

// DefaultReadUnits implements storagemodels.DefaultsProvider.
func (c StoreConfig) DefaultReadUnits() int { return c.Defaults.ReadUnits }

// DefaultWriteUnits implements storagemodels.DefaultsProvider.
func (c StoreConfig) DefaultWriteUnits() int { return c.Defaults.WriteUnits }

// DefaultStorageGB implements storagemodels.DefaultsProvider.
func (c StoreConfig) DefaultStorageGB() int { return c.Defaults.StorageGB }

// validate ensures config values are within acceptable bounds.
func (c *StoreConfig) validate() {
	if c.Defaults.Mode == storagemodels.CapacityUnset {
		c.Defaults.Mode = storagemodels.DefaultCapacityMode
	}
	if c.Defaults.ReadUnits < 0 {
		c.Defaults.ReadUnits = storagemodels.DefaultReadUnits
	}
	if c.Defaults.WriteUnits < 0 {
		c.Defaults.WriteUnits = storagemodels.DefaultWriteUnits
	}
	if c.Defaults.StorageGB < 1 {
		c.Defaults.StorageGB = storagemodels.DefaultStorageGB
	}
}
