// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

// Option configures a Macro during New.
//
// Example:
//
//	m, err := macro.New(s, q, 64, 64, macro.WithName("tiles"), macro.WithSharedTransforms())
type Option func(*options)

type options struct {
	name             string
	sharedTransforms bool
}

func defaultOptions() options {
	return options{name: "macro"}
}

// WithName labels the macro in log output.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithSharedTransforms stores a single owned copy per distinct transform
// value instead of one copy per batch. Replay output is unchanged; only
// the footprint differs.
func WithSharedTransforms() Option {
	return func(o *options) {
		o.sharedTransforms = true
	}
}
