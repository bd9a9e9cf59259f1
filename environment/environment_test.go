/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlaceholders(t *testing.T) {
	env := Map{
		"env.prefix": "eu",
		"region":     "west",
		"qualified":  "${env.prefix}-${region}",
		"loop":       "${loop}",
		"which":      "region",
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single token", "${env.prefix}_orders", "eu_orders"},
		{"several tokens", "${env.prefix}_${region}_orders", "eu_west_orders"},
		{"recursive value", "${qualified}_orders", "eu-west_orders"},
		{"default used", "${tier:gold}_orders", "gold_orders"},
		{"default ignored when defined", "${region:east}", "west"},
		{"default with token", "${tier:${region}}", "west"},
		{"nested key", "${${which}}", "west"},
		{"unknown left in place", "${missing}_orders", "${missing}_orders"},
		{"unterminated", "orders_${env.prefix", "orders_${env.prefix"},
		{"no tokens", "orders", "orders"},
		{"expression untouched", "#{env['x']}", "#{env['x']}"},
		{"self reference terminates", "${loop}", "${loop}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePlaceholders(env, tt.input))
		})
	}
}

func TestResolvePlaceholdersWithoutEnvironment(t *testing.T) {
	assert.Equal(t, "${env.prefix}_orders", ResolvePlaceholders(nil, "${env.prefix}_orders"))
}

func TestLayered(t *testing.T) {
	env := Layered(
		Map{"a": "first"},
		nil,
		Map{"a": "second", "b": "second"},
	)

	v, ok := env.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = env.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = env.Lookup("c")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"a": "first", "b": "second"}, env.Properties())
}

func TestMapPropertiesIsCopy(t *testing.T) {
	m := Map{"a": "1"}
	props := m.Properties()
	props["a"] = "2"
	assert.Equal(t, "1", m["a"])
}

func TestOS(t *testing.T) {
	t.Setenv("ENTITYMETA_TEST_PREFIX", "ap")

	v, ok := OS().Lookup("ENTITYMETA_TEST_PREFIX")
	require.True(t, ok)
	assert.Equal(t, "ap", v)
	assert.Equal(t, "ap", OS().Properties()["ENTITYMETA_TEST_PREFIX"])
	assert.Equal(t, "ap_orders", ResolvePlaceholders(OS(), "${ENTITYMETA_TEST_PREFIX}_orders"))
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("EM_DOTENV_PREFIX=eu\nEM_DOTENV_REGION=west\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("EM_DOTENV_REGION=east\n"), 0o600))

	env, err := DotEnv(first, second)
	require.NoError(t, err)
	assert.Equal(t, Map{"EM_DOTENV_PREFIX": "eu", "EM_DOTENV_REGION": "east"}, env)

	_, ok := os.LookupEnv("EM_DOTENV_PREFIX")
	assert.False(t, ok, "process environment must stay untouched")

	_, err = DotEnv(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
