/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymeta/errors"
)

// descriptors maps data-model types to their explicit descriptions.
var (
	descriptors = make(map[reflect.Type]TypeDescriptor)
	byName      = make(map[string]reflect.Type)
	mu          sync.RWMutex
)

// Register records desc for its type. Registering a type or an entity name
// twice is rejected to prevent accidental overrides.
func Register(desc TypeDescriptor) error {
	if desc.Type == nil {
		return errors.NewValidationError("type", "descriptor has no type")
	}
	t := normalize(desc.Type)
	desc.Type = t
	if desc.Name == "" {
		desc.Name = simpleName(t)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := descriptors[t]; exists {
		return errors.NewValidationError("type", fmt.Sprintf("type %v already registered", t))
	}
	if other, exists := byName[desc.Name]; exists {
		return errors.NewValidationError("name", fmt.Sprintf("entity name %q already registered for %v", desc.Name, other))
	}
	descriptors[t] = desc
	byName[desc.Name] = t
	return nil
}

// MustRegister is like Register but panics on error. Intended for init functions.
func MustRegister(desc TypeDescriptor) {
	if err := Register(desc); err != nil {
		panic(fmt.Sprintf("type registry: %v", err))
	}
}

// Lookup returns the descriptor registered for T, if any.
func Lookup[T any]() (TypeDescriptor, bool) {
	return LookupType(reflect.TypeFor[T]())
}

// LookupType returns the descriptor registered for t, if any. Pointer types
// resolve to their element.
func LookupType(t reflect.Type) (TypeDescriptor, bool) {
	if t == nil {
		return TypeDescriptor{}, false
	}
	t = normalize(t)

	mu.RLock()
	defer mu.RUnlock()
	d, ok := descriptors[t]
	return d, ok
}

// LookupName returns the descriptor registered under an entity name.
func LookupName(name string) (TypeDescriptor, error) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := byName[name]
	if !ok {
		return TypeDescriptor{}, fmt.Errorf("type registry: %w: %q", errors.ErrNotRegistered, name)
	}
	return descriptors[t], nil
}

// Registered returns every registered descriptor ordered by entity name.
func Registered() []TypeDescriptor {
	mu.RLock()
	out := make([]TypeDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Clear removes every registration. Used by tests.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	descriptors = make(map[reflect.Type]TypeDescriptor)
	byName = make(map[string]reflect.Type)
}

func normalize(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
