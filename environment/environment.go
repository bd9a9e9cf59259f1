/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package environment

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment supplies property values for table-name templates.
type Environment interface {
	// Lookup returns the value of key and whether it is defined.
	Lookup(key string) (string, bool)
	// Properties returns a snapshot of every defined property.
	Properties() map[string]string
}

// Map is an Environment backed by a fixed set of properties.
type Map map[string]string

// Lookup implements Environment.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Properties implements Environment.
func (m Map) Properties() map[string]string {
	return maps.Clone(m)
}

type osEnv struct{}

// OS returns an Environment backed by the process environment.
func OS() Environment {
	return osEnv{}
}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnv) Properties() map[string]string {
	props := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			props[k] = v
		}
	}
	return props
}

// DotEnv reads the given .env files into a Map without modifying the process
// environment. Later files override earlier ones.
func DotEnv(files ...string) (Map, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	env := make(Map)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", f, err)
		}
		maps.Copy(env, vals)
	}
	return env, nil
}

// Layered returns an Environment that consults envs in order; the first one
// defining a key wins. Nil entries are skipped.
func Layered(envs ...Environment) Environment {
	layers := make([]Environment, 0, len(envs))
	for _, e := range envs {
		if e != nil {
			layers = append(layers, e)
		}
	}
	return layered(layers)
}

type layered []Environment

func (l layered) Lookup(key string) (string, bool) {
	for _, e := range l {
		if v, ok := e.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

func (l layered) Properties() map[string]string {
	props := make(map[string]string)
	for i := len(l) - 1; i >= 0; i-- {
		maps.Copy(props, l[i].Properties())
	}
	return props
}
