// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sink provides a deferred, depth-ordered job queue implementing
// macro.Scheduler.
//
// Producers schedule jobs at a depth; nothing is drawn until Flush, which
// runs every pending job exactly once against a device, lowest depth
// first. Jobs scheduled at the same depth run in scheduling order.
//
//	s := sink.New()
//	_ = m.DrawAt(0, 0, 2)
//	_ = m.DrawAt(50, 0, 1)
//	s.Flush(dev) // the second draw runs first
package sink

import (
	"cmp"
	"slices"
	"sync"

	"github.com/gogpu/macro"
)

type item struct {
	job macro.Job
	z   macro.ZPos
}

// Sink collects deferred jobs. Schedule may be called from several
// goroutines; Flush runs jobs one at a time on the calling goroutine.
type Sink struct {
	mu    sync.Mutex
	items []item
}

var _ macro.Scheduler = (*Sink)(nil)

// New creates an empty sink.
func New() *Sink {
	return &Sink{items: make([]item, 0, 64)}
}

// Schedule queues job to run at depth z during the next Flush.
// A nil job is ignored.
func (s *Sink) Schedule(job macro.Job, z macro.ZPos) {
	if job == nil {
		return
	}
	s.mu.Lock()
	s.items = append(s.items, item{job: job, z: z})
	s.mu.Unlock()
}

// Len returns the number of pending jobs.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Flush runs all pending jobs against d in depth order and returns how
// many ran. Jobs scheduled while flushing are kept for the next Flush.
func (s *Sink) Flush(d macro.Device) int {
	s.mu.Lock()
	items := s.items
	s.items = make([]item, 0, cap(items))
	s.mu.Unlock()

	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.z, b.z)
	})
	for _, it := range items {
		it.job(d)
	}

	macro.Logger().Debug("sink flushed", "jobs", len(items))
	return len(items)
}

// Discard drops all pending jobs without running them.
func (s *Sink) Discard() {
	s.mu.Lock()
	n := len(s.items)
	s.items = s.items[:0]
	s.mu.Unlock()

	if n > 0 {
		macro.Logger().Debug("sink discarded", "jobs", n)
	}
}
