// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decay

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/dutch/core"
)

var (
	tokenA    = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	tokenB    = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	recipient = common.HexToAddress("0x00000000000000000000000000000000000000cc")
)

func TestDecayFlatPair(t *testing.T) {
	require := require.New(t)

	amount := uint256.NewInt(1_000_000)
	for _, now := range []uint64{0, 50, 100, 150, math.MaxUint64} {
		decayed, err := Decay(amount, amount, 100, 200, now)
		require.NoError(err)
		require.Equal(amount, decayed)
	}
}

func TestDecayWindowInversion(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		name       string
		start, end uint64
		s, e       uint64
	}{
		{"inverted", 100, 0, 200, 100},
		{"zero width", 100, 0, 100, 100},
		{"flat amounts still rejected", 50, 50, 200, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decay(uint256.NewInt(tc.start), uint256.NewInt(tc.end), tc.s, tc.e, 150)
			require.ErrorIs(err, ErrEndTimeBeforeStartTime)
		})
	}
}

func TestDecayBeforeStartAndAfterEnd(t *testing.T) {
	require := require.New(t)

	start := uint256.NewInt(100)
	end := uint256.NewInt(40)

	decayed, err := Decay(start, end, 100, 200, 100)
	require.NoError(err)
	require.Equal(start, decayed)

	decayed, err = Decay(start, end, 100, 200, 50)
	require.NoError(err)
	require.Equal(start, decayed)

	decayed, err = Decay(start, end, 100, 200, 200)
	require.NoError(err)
	require.Equal(end, decayed)

	decayed, err = Decay(start, end, 100, 200, 500)
	require.NoError(err)
	require.Equal(end, decayed)
}

// Worked example from the settlement schedule: 100 -> 0 over [0, 100],
// queried at t=25. Accelerated elapsed 50, ratio 0.5, floor delta 50.
func TestDecayFallingExample(t *testing.T) {
	require := require.New(t)

	decayed, err := Decay(uint256.NewInt(100), uint256.NewInt(0), 0, 100, 25)
	require.NoError(err)
	require.Equal(uint256.NewInt(50), decayed)
}

// 0 -> 100 over [0, 100] at t=60: accelerated elapsed 120 already
// consumed the window, so the result clamps to the end amount well
// before the nominal end time.
func TestDecayRisingClampsAtMidpoint(t *testing.T) {
	require := require.New(t)

	decayed, err := Decay(uint256.NewInt(0), uint256.NewInt(100), 0, 100, 60)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), decayed)

	// Exactly the midpoint reaches the end amount too.
	decayed, err = Decay(uint256.NewInt(0), uint256.NewInt(100), 0, 100, 50)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), decayed)

	// Every instant from the midpoint to the window close holds there.
	for now := uint64(50); now <= 100; now++ {
		decayed, err := Decay(uint256.NewInt(0), uint256.NewInt(100), 0, 100, now)
		require.NoError(err)
		require.Equal(uint256.NewInt(100), decayed, "now=%d", now)
	}
}

func TestDecayFallingClampsAtMidpoint(t *testing.T) {
	require := require.New(t)

	for now := uint64(150); now <= 200; now++ {
		decayed, err := Decay(uint256.NewInt(777), uint256.NewInt(13), 100, 200, now)
		require.NoError(err)
		require.Equal(uint256.NewInt(13), decayed, "now=%d", now)
	}
}

func TestDecayMonotonic(t *testing.T) {
	require := require.New(t)

	// Falling pair: non-increasing as now advances.
	prev := uint256.NewInt(1_000_003)
	for now := uint64(1000); now <= 2000; now += 7 {
		decayed, err := Decay(uint256.NewInt(1_000_003), uint256.NewInt(501), 1000, 2000, now)
		require.NoError(err)
		require.False(decayed.Gt(prev), "now=%d", now)
		prev = decayed
	}
	require.Equal(uint256.NewInt(501), prev)

	// Rising pair: non-decreasing as now advances.
	prev = uint256.NewInt(501)
	for now := uint64(1000); now <= 2000; now += 7 {
		decayed, err := Decay(uint256.NewInt(501), uint256.NewInt(1_000_003), 1000, 2000, now)
		require.NoError(err)
		require.False(decayed.Lt(prev), "now=%d", now)
		prev = decayed
	}
	require.Equal(uint256.NewInt(1_000_003), prev)
}

// Both directions round in favor of a result that never lands below the
// exact interpolation line: decayed*duration >= start*duration -+
// diff*acceleratedElapsed, cross-multiplied to stay in integers.
func TestDecayRoundingNeverBelowLine(t *testing.T) {
	require := require.New(t)

	check := func(startAmount, endAmount uint64, decayStart, decayEnd uint64) {
		duration := new(big.Int).SetUint64(decayEnd - decayStart)
		for now := decayStart + 1; now < decayEnd; now++ {
			decayed, err := Decay(uint256.NewInt(startAmount), uint256.NewInt(endAmount), decayStart, decayEnd, now)
			require.NoError(err)

			accelerated := new(big.Int).SetUint64(AccelerationFactor * (now - decayStart))
			if accelerated.Cmp(duration) > 0 {
				accelerated.Set(duration)
			}
			// exact line value * duration
			line := new(big.Int).SetUint64(startAmount)
			line.Mul(line, duration)
			diff := new(big.Int).Sub(
				new(big.Int).SetUint64(endAmount),
				new(big.Int).SetUint64(startAmount),
			)
			line.Add(line, diff.Mul(diff, accelerated))

			got := new(big.Int).Mul(decayed.ToBig(), duration)
			require.True(got.Cmp(line) >= 0,
				"start=%d end=%d now=%d decayed=%s", startAmount, endAmount, now, decayed)
		}
	}

	check(1000, 333, 0, 97)
	check(333, 1000, 0, 97)
	check(7, 0, 10, 23)
	check(0, 7, 10, 23)
}

func TestDecayRisingRoundsUp(t *testing.T) {
	require := require.New(t)

	// diff=10 over duration 100 at t=1: accelerated 2, exact delta 0.2,
	// ceiled to 1.
	decayed, err := Decay(uint256.NewInt(0), uint256.NewInt(10), 0, 100, 1)
	require.NoError(err)
	require.Equal(uint256.NewInt(1), decayed)

	// Falling mirror floors: exact delta 0.2 drops to 0.
	decayed, err = Decay(uint256.NewInt(10), uint256.NewInt(0), 0, 100, 1)
	require.NoError(err)
	require.Equal(uint256.NewInt(10), decayed)
}

func TestDecayLargeAmounts(t *testing.T) {
	require := require.New(t)

	// Near the top of the 256-bit range; the 512-bit intermediate keeps
	// the scaled delta exact.
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	decayed, err := Decay(huge, uint256.NewInt(0), 0, 1000, 100)
	require.NoError(err)

	// Accelerated ratio 200/1000 reduces to a fifth, floored.
	expected := new(uint256.Int).Sub(huge, new(uint256.Int).Div(huge, uint256.NewInt(5)))
	require.Equal(expected, decayed)

	// Rising to the max value stays in range.
	max := new(uint256.Int).SetAllOne()
	decayed, err = Decay(uint256.NewInt(0), max, 0, 1000, 499)
	require.NoError(err)
	require.False(decayed.Gt(max))
}

func TestDecayMissingAmount(t *testing.T) {
	require := require.New(t)

	_, err := Decay(nil, uint256.NewInt(1), 0, 100, 50)
	require.ErrorIs(err, ErrMissingAmount)

	_, err = Decay(uint256.NewInt(1), nil, 0, 100, 50)
	require.ErrorIs(err, ErrMissingAmount)
}

func TestDecayDoesNotMutateInputs(t *testing.T) {
	require := require.New(t)

	start := uint256.NewInt(1000)
	end := uint256.NewInt(0)
	_, err := Decay(start, end, 0, 100, 25)
	require.NoError(err)
	require.Equal(uint256.NewInt(1000), start)
	require.Equal(uint256.NewInt(0), end)
}

func TestDecayInput(t *testing.T) {
	require := require.New(t)

	in := core.DutchInput{
		Token:       tokenA,
		StartAmount: uint256.NewInt(1000),
		EndAmount:   uint256.NewInt(2000),
	}

	resolved, err := DecayInput(in, 0, 100, 25)
	require.NoError(err)
	require.Equal(tokenA, resolved.Token)
	require.Equal(uint256.NewInt(1500), resolved.Amount)

	// MaxAmount carries the pre-decay cap, not the live amount.
	require.Equal(uint256.NewInt(2000), resolved.MaxAmount)
}

func TestDecayInputWrongDirection(t *testing.T) {
	require := require.New(t)

	in := core.DutchInput{
		Token:       tokenA,
		StartAmount: uint256.NewInt(2000),
		EndAmount:   uint256.NewInt(1000),
	}
	_, err := DecayInput(in, 0, 100, 25)
	require.ErrorIs(err, ErrIncorrectAmounts)
}

func TestDecayOutput(t *testing.T) {
	require := require.New(t)

	out := core.DutchOutput{
		Token:       tokenB,
		StartAmount: uint256.NewInt(2000),
		EndAmount:   uint256.NewInt(1000),
		Recipient:   recipient,
	}

	resolved, err := DecayOutput(out, 0, 100, 25)
	require.NoError(err)
	require.Equal(tokenB, resolved.Token)
	require.Equal(recipient, resolved.Recipient)
	require.Equal(uint256.NewInt(1500), resolved.Amount)
}

func TestDecayOutputWrongDirection(t *testing.T) {
	require := require.New(t)

	out := core.DutchOutput{
		Token:       tokenB,
		StartAmount: uint256.NewInt(1000),
		EndAmount:   uint256.NewInt(2000),
		Recipient:   recipient,
	}
	_, err := DecayOutput(out, 0, 100, 25)
	require.ErrorIs(err, ErrIncorrectAmounts)
}

func TestDecayOutputs(t *testing.T) {
	require := require.New(t)

	outs := []core.DutchOutput{
		{Token: tokenA, StartAmount: uint256.NewInt(100), EndAmount: uint256.NewInt(0), Recipient: recipient},
		{Token: tokenB, StartAmount: uint256.NewInt(3000), EndAmount: uint256.NewInt(3000), Recipient: recipient},
		{Token: tokenB, StartAmount: uint256.NewInt(500), EndAmount: uint256.NewInt(250), Recipient: recipient},
	}

	resolved, err := DecayOutputs(outs, 0, 100, 25)
	require.NoError(err)
	require.Len(resolved, 3)

	// Input order is preserved index for index.
	require.Equal(uint256.NewInt(50), resolved[0].Amount)
	require.Equal(uint256.NewInt(3000), resolved[1].Amount)
	require.Equal(uint256.NewInt(375), resolved[2].Amount)
	require.Equal(tokenA, resolved[0].Token)
	require.Equal(tokenB, resolved[1].Token)
}

func TestDecayOutputsEmpty(t *testing.T) {
	require := require.New(t)

	resolved, err := DecayOutputs(nil, 0, 100, 25)
	require.NoError(err)
	require.NotNil(resolved)
	require.Empty(resolved)
}

func TestDecayOutputsAllOrNothing(t *testing.T) {
	require := require.New(t)

	outs := []core.DutchOutput{
		{Token: tokenA, StartAmount: uint256.NewInt(100), EndAmount: uint256.NewInt(0), Recipient: recipient},
		{Token: tokenB, StartAmount: uint256.NewInt(1), EndAmount: uint256.NewInt(2), Recipient: recipient},
	}

	resolved, err := DecayOutputs(outs, 0, 100, 25)
	require.ErrorIs(err, ErrIncorrectAmounts)
	require.Nil(resolved)
}
