/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymeta/storagemodels"
)

const sample = `
region: eu-west-1
defaults:
  readUnits: 100
  storageGB: 25
properties:
  env.prefix: eu
tables:
  Order:
    tableName: ${env.prefix}_orders
    capacityMode: ON_DEMAND
    storageGB: 10
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, storagemodels.Provisioned, cfg.DefaultCapacityMode())
	assert.Equal(t, 100, cfg.DefaultReadUnits())
	assert.Equal(t, storagemodels.DefaultWriteUnits, cfg.DefaultWriteUnits())
	assert.Equal(t, 25, cfg.DefaultStorageGB())

	order, ok := cfg.Tables["Order"]
	require.True(t, ok)
	assert.Equal(t, "${env.prefix}_orders", order.TableName)
	assert.Equal(t, storagemodels.OnDemand, order.CapacityMode)
	assert.Equal(t, 10, order.StorageGB)
	assert.Equal(t, storagemodels.NotSet, order.ReadUnits)
	assert.True(t, order.AutoCreateTable)

	v, ok := cfg.Environment().Lookup("env.prefix")
	require.True(t, ok)
	assert.Equal(t, "eu", v)
}

func TestParseValidates(t *testing.T) {
	cfg, err := Parse([]byte("defaults:\n  mode: UNSET\n  readUnits: -3\n  storageGB: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStoreConfig().Defaults, cfg.Defaults)

	_, err = Parse([]byte("defaults:\n  mode: SOMETIMES\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(dotenv, []byte(
		"ENTITYMETA_CAPACITY_MODE=on_demand\nENTITYMETA_STORAGE_GB=7\nENTITYMETA_REGION=from-file\nTEMPLATE_TIER=gold\n",
	), 0o600))
	t.Setenv(EnvRegion, "from-process")

	cfg := DefaultStoreConfig()
	require.NoError(t, cfg.ApplyEnv(dotenv))

	assert.Equal(t, "from-process", cfg.Region, "process environment wins over .env")
	assert.Equal(t, storagemodels.OnDemand, cfg.DefaultCapacityMode())
	assert.Equal(t, 7, cfg.DefaultStorageGB())

	v, ok := cfg.Environment().Lookup("TEMPLATE_TIER")
	require.True(t, ok)
	assert.Equal(t, "gold", v)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv(EnvReadUnits, "many")
	cfg := DefaultStoreConfig()
	assert.Error(t, cfg.ApplyEnv())
}

func TestEnvironmentPrecedence(t *testing.T) {
	t.Setenv("ENTITYMETA_TEST_KEY", "process")
	cfg := DefaultStoreConfig()
	cfg.Properties = map[string]string{"ENTITYMETA_TEST_KEY": "config"}

	v, ok := cfg.Environment().Lookup("ENTITYMETA_TEST_KEY")
	require.True(t, ok)
	assert.Equal(t, "config", v)
}

func TestDefaultsProvider(t *testing.T) {
	var provider storagemodels.DefaultsProvider = DefaultStoreConfig()
	limits := storagemodels.DefaultLimits(provider)
	assert.Equal(t, storagemodels.TableLimits{
		Mode:       storagemodels.Provisioned,
		ReadUnits:  storagemodels.DefaultReadUnits,
		WriteUnits: storagemodels.DefaultWriteUnits,
		StorageGB:  storagemodels.DefaultStorageGB,
	}, limits)
}
