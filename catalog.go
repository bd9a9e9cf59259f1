/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymeta

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
	"github.com/suparena/entitymeta/resolver"
)

// Catalog resolves entity metadata once per type and keeps the result for
// the lifetime of the process. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*resolver.EntityMetadata
	opts    []resolver.Option
}

// NewCatalog creates a Catalog that resolves every type with opts.
func NewCatalog(opts ...resolver.Option) *Catalog {
	return &Catalog{
		entries: make(map[reflect.Type]*resolver.EntityMetadata),
		opts:    opts,
	}
}

// Resolve returns the metadata of T, resolving it on first use.
func Resolve[T any](c *Catalog) (*resolver.EntityMetadata, error) {
	return c.ResolveType(reflect.TypeFor[T]())
}

// MustResolve is like Resolve but panics on error. It is intended for
// bootstrap code where invalid metadata is a programming error.
func MustResolve[T any](c *Catalog) *resolver.EntityMetadata {
	md, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("entity metadata: %v", err))
	}
	return md
}

// ResolveType returns the metadata of t. Registered descriptors take
// precedence over struct tags. Failures are not cached.
func (c *Catalog) ResolveType(t reflect.Type) (*resolver.EntityMetadata, error) {
	if t == nil {
		return nil, errors.NewValidationError("type", "must not be nil")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	c.mu.RLock()
	md, ok := c.entries[t]
	c.mu.RUnlock()
	if ok {
		return md, nil
	}

	desc, ok := registry.LookupType(t)
	if !ok {
		var err error
		desc, err = registry.FromType(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", errors.ErrNotRegistered, t, err)
		}
	}

	// Distinct types resolve concurrently; the first stored result wins.
	md, err := resolver.Resolve(desc, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[t]; ok {
		return existing, nil
	}
	c.entries[t] = md
	return md, nil
}

// Entities returns the names of the resolved entities in sorted order.
func (c *Catalog) Entities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for _, md := range c.entries {
		names = append(names, md.EntityName())
	}
	sort.Strings(names)
	return names
}

// Len returns the number of resolved entities.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
