// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package clock provides a manual time source for tests.
package clock

import "sync"

// Manual is a hand-advanced clock. The zero value starts at time 0.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

// NewManual creates a manual clock at the given instant
func NewManual(start uint64) *Manual {
	return &Manual{now: start}
}

// Now returns the current instant
func (c *Manual) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d seconds
func (c *Manual) Advance(d uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set moves the clock to an absolute instant
func (c *Manual) Set(t uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
