// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package decay implements the time-decay schedule for Dutch orders.
// A resting order's amount moves linearly from a start value toward an
// end value across a decay window, with elapsed time accelerated 2x, so
// the end value is reached at the midpoint of the nominal window.
package decay

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/dutch/core"
)

var (
	// ErrEndTimeBeforeStartTime is returned when the decay window is
	// inverted or zero-width. The order is invalid, never retryable.
	ErrEndTimeBeforeStartTime = errors.New("decay end time before start time")

	// ErrIncorrectAmounts is returned when a leg's amounts decay in the
	// wrong direction for its type: inputs must decay upward, outputs
	// downward.
	ErrIncorrectAmounts = errors.New("incorrect amounts")

	// ErrMissingAmount is returned when a leg amount is nil.
	ErrMissingAmount = errors.New("missing amount")

	// ErrAmountOverflow is returned when the interpolated amount does
	// not fit in 256 bits. Treated as fatal by callers.
	ErrAmountOverflow = errors.New("amount overflow")
)

// AccelerationFactor multiplies elapsed time before the decay ratio is
// taken. At 2x the live amount reaches its end value once half of the
// nominal window has passed, and holds there.
const AccelerationFactor = 2

// Decay computes the amount valid at now for a value moving from
// startAmount to endAmount across [decayStartTime, decayEndTime].
//
// The delta applied to startAmount is rounded asymmetrically: floored
// when the value is falling, ceiled when it is rising. Either way the
// result never lands below the exact interpolation line, which closes
// the rounding exploit where a filler picks the block timestamp that
// shaves a unit off the counterparty's leg.
//
// No direction constraint is enforced here; leg-level wrappers reject
// misdirected amount pairs before delegating.
func Decay(startAmount, endAmount *uint256.Int, decayStartTime, decayEndTime, now uint64) (*uint256.Int, error) {
	if startAmount == nil || endAmount == nil {
		return nil, ErrMissingAmount
	}
	if decayEndTime <= decayStartTime {
		return nil, ErrEndTimeBeforeStartTime
	}

	switch {
	case startAmount.Eq(endAmount):
		return new(uint256.Int).Set(startAmount), nil
	case now >= decayEndTime:
		return new(uint256.Int).Set(endAmount), nil
	case now <= decayStartTime:
		return new(uint256.Int).Set(startAmount), nil
	}

	elapsed := now - decayStartTime
	duration := decayEndTime - decayStartTime

	// elapsed < duration is guaranteed above, so duration-elapsed cannot
	// underflow and the comparison is 2*elapsed >= duration without the
	// doubling ever wrapping uint64.
	if elapsed >= duration-elapsed {
		return new(uint256.Int).Set(endAmount), nil
	}

	accelerated := uint256.NewInt(AccelerationFactor * elapsed)
	window := uint256.NewInt(duration)
	delta := new(uint256.Int)

	if endAmount.Lt(startAmount) {
		// Falling amount: floor the subtracted delta.
		diff := new(uint256.Int).Sub(startAmount, endAmount)
		if _, overflow := delta.MulDivOverflow(diff, accelerated, window); overflow {
			return nil, ErrAmountOverflow
		}
		return new(uint256.Int).Sub(startAmount, delta), nil
	}

	// Rising amount: ceil the added delta.
	diff := new(uint256.Int).Sub(endAmount, startAmount)
	if _, overflow := delta.MulDivOverflow(diff, accelerated, window); overflow {
		return nil, ErrAmountOverflow
	}
	if rem := new(uint256.Int).MulMod(diff, accelerated, window); !rem.IsZero() {
		delta.AddUint64(delta, 1)
	}
	decayed, overflow := new(uint256.Int).AddOverflow(startAmount, delta)
	if overflow {
		return nil, ErrAmountOverflow
	}
	return decayed, nil
}

// DecayInput resolves an input leg at now. Input cost may only rise, so
// StartAmount must not exceed EndAmount. The resolved MaxAmount is the
// leg's EndAmount: the worst-case cap travels with the result so that
// settlement can enforce a slippage ceiling independent of the live
// amount.
func DecayInput(in core.DutchInput, decayStartTime, decayEndTime, now uint64) (core.InputToken, error) {
	if in.StartAmount == nil || in.EndAmount == nil {
		return core.InputToken{}, ErrMissingAmount
	}
	if in.StartAmount.Gt(in.EndAmount) {
		return core.InputToken{}, ErrIncorrectAmounts
	}
	amount, err := Decay(in.StartAmount, in.EndAmount, decayStartTime, decayEndTime, now)
	if err != nil {
		return core.InputToken{}, err
	}
	return core.InputToken{
		Token:     in.Token,
		Amount:    amount,
		MaxAmount: new(uint256.Int).Set(in.EndAmount),
	}, nil
}

// DecayOutput resolves an output leg at now. Output payout may only
// fall, so StartAmount must not be below EndAmount.
func DecayOutput(out core.DutchOutput, decayStartTime, decayEndTime, now uint64) (core.OutputToken, error) {
	if out.StartAmount == nil || out.EndAmount == nil {
		return core.OutputToken{}, ErrMissingAmount
	}
	if out.StartAmount.Lt(out.EndAmount) {
		return core.OutputToken{}, ErrIncorrectAmounts
	}
	amount, err := Decay(out.StartAmount, out.EndAmount, decayStartTime, decayEndTime, now)
	if err != nil {
		return core.OutputToken{}, err
	}
	return core.OutputToken{
		Token:     out.Token,
		Amount:    amount,
		Recipient: out.Recipient,
	}, nil
}

// DecayOutputs resolves a set of output legs at now, preserving input
// order. Resolution is all-or-nothing: the first failing leg aborts the
// call and no partial result is returned.
func DecayOutputs(outs []core.DutchOutput, decayStartTime, decayEndTime, now uint64) ([]core.OutputToken, error) {
	resolved := make([]core.OutputToken, len(outs))
	for i, out := range outs {
		token, err := DecayOutput(out, decayStartTime, decayEndTime, now)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		resolved[i] = token
	}
	return resolved, nil
}
