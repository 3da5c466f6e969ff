// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package resolver prices whole Dutch orders at a single instant.
package resolver

import (
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/dutch/core"
	"github.com/luxfi/dutch/decay"
	"github.com/luxfi/dutch/pkg/log"
)

// ErrOrderExpired is returned when the order's deadline has passed.
var ErrOrderExpired = errors.New("order expired")

// Clock returns the current unix timestamp in seconds.
type Clock func() uint64

// Resolver prices orders against an injected time source. The clock is
// read exactly once per resolution, so every leg of an order sees the
// same instant.
type Resolver struct {
	clock Clock
	log   log.Logger
}

// New creates a resolver on the wall clock
func New(logger log.Logger) *Resolver {
	return NewWithClock(func() uint64 { return uint64(time.Now().Unix()) }, logger)
}

// NewWithClock creates a resolver with an explicit time source
func NewWithClock(clock Clock, logger log.Logger) *Resolver {
	return &Resolver{
		clock: clock,
		log:   logger,
	}
}

// Now returns the resolver's current instant
func (r *Resolver) Now() uint64 {
	return r.clock()
}

// Resolve prices every leg of the order at the clock's current instant.
func (r *Resolver) Resolve(order *core.DutchOrder) (*core.ResolvedOrder, error) {
	return r.ResolveAt(order, r.clock())
}

// ResolveAt prices every leg of the order at an explicit instant. Any
// failure rejects the order as a whole; there is no partial result.
func (r *Resolver) ResolveAt(order *core.DutchOrder, now uint64) (*core.ResolvedOrder, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.Deadline != 0 && now > order.Deadline {
		return nil, ErrOrderExpired
	}

	input, err := decay.DecayInput(order.Input, order.DecayStartTime, order.DecayEndTime, now)
	if err != nil {
		return nil, fmt.Errorf("input leg: %w", err)
	}

	outputs, err := decay.DecayOutputs(order.Outputs, order.DecayStartTime, order.DecayEndTime, now)
	if err != nil {
		return nil, err
	}

	resolved := &core.ResolvedOrder{
		OrderID:    order.Hash(),
		Input:      input,
		Outputs:    outputs,
		ResolvedAt: now,
	}

	r.log.Debug("order resolved",
		"order", resolved.OrderID,
		"at", now,
		"input", input.Amount,
		"outputs", len(outputs))

	return resolved, nil
}
