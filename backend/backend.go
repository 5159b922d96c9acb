// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/macro"
)

// Common backend errors.
var (
	// ErrUnknownBackend is returned by New for a name nobody registered.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrNoBackend is returned by Default when the registry is empty.
	ErrNoBackend = errors.New("backend: no backend registered")
)

// Factory creates a device of the given size.
type Factory func(width, height int) (macro.Device, error)
