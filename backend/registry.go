// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/macro"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Preferred order for Default; unknown names follow alphabetically.
	priority = []string{"raster"}
)

// Register makes a backend available under name. It panics if factory is
// nil or name is already taken, so that duplicate registrations surface
// during program initialization.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend. It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Available returns the registered names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates a device from the backend registered as name.
func New(name string, width, height int) (macro.Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	d, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	macro.Logger().Debug("backend device created", "backend", name, "width", width, "height", height)
	return d, nil
}

// Default creates a device from the preferred registered backend.
func Default(width, height int) (macro.Device, error) {
	names := Available()
	for _, p := range slices.Backward(priority) {
		if i := slices.Index(names, p); i > 0 {
			names = slices.Insert(slices.Delete(names, i, i+1), 0, p)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoBackend
	}
	return New(names[0], width, height)
}
