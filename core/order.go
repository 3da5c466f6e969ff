// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/luxfi/dutch/pkg/ids"
)

var (
	ErrMissingAmount          = errors.New("order leg missing amount")
	ErrDeadlineBeforeDecayEnd = errors.New("deadline before decay end time")
)

// orderHashTag domain-separates order hashes from other keccak uses.
const orderHashTag = "dutch.order.v1"

// DutchOrder is a resting order whose leg amounts decay linearly over
// [DecayStartTime, DecayEndTime]. Deadline, when non-zero, is the last
// instant at which the order may still be filled.
type DutchOrder struct {
	Swapper        common.Address `json:"swapper"`
	DecayStartTime uint64         `json:"decay_start_time"`
	DecayEndTime   uint64         `json:"decay_end_time"`
	Deadline       uint64         `json:"deadline,omitempty"`
	Input          DutchInput     `json:"input"`
	Outputs        []DutchOutput  `json:"outputs"`
}

// ResolvedOrder is the result of pricing every leg of a DutchOrder at a
// single instant.
type ResolvedOrder struct {
	OrderID    ids.ID        `json:"order_id"`
	Input      InputToken    `json:"input"`
	Outputs    []OutputToken `json:"outputs"`
	ResolvedAt uint64        `json:"resolved_at"`
}

// Validate checks the structural invariants of the order. Amount
// direction per leg is enforced by the decay engine at pricing time.
func (o *DutchOrder) Validate() error {
	if o.Input.StartAmount == nil || o.Input.EndAmount == nil {
		return fmt.Errorf("input: %w", ErrMissingAmount)
	}
	for i, out := range o.Outputs {
		if out.StartAmount == nil || out.EndAmount == nil {
			return fmt.Errorf("output %d: %w", i, ErrMissingAmount)
		}
	}
	if o.Deadline != 0 && o.Deadline < o.DecayEndTime {
		return ErrDeadlineBeforeDecayEnd
	}
	return nil
}

// Hash derives the canonical order ID: the keccak of a fixed-layout
// encoding of every field that affects pricing.
func (o *DutchOrder) Hash() ids.ID {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(orderHashTag))
	h.Write(o.Swapper.Bytes())

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], o.DecayStartTime)
	h.Write(ts[:])
	binary.BigEndian.PutUint64(ts[:], o.DecayEndTime)
	h.Write(ts[:])
	binary.BigEndian.PutUint64(ts[:], o.Deadline)
	h.Write(ts[:])

	writeLeg(h, o.Input.Token, o.Input.StartAmount, o.Input.EndAmount, common.Address{})
	binary.BigEndian.PutUint64(ts[:], uint64(len(o.Outputs)))
	h.Write(ts[:])
	for _, out := range o.Outputs {
		writeLeg(h, out.Token, out.StartAmount, out.EndAmount, out.Recipient)
	}

	var id ids.ID
	h.Sum(id[:0])
	return id
}

func writeLeg(h hash.Hash, token common.Address, start, end *uint256.Int, recipient common.Address) {
	h.Write(token.Bytes())
	var b [32]byte
	if start != nil {
		b = start.Bytes32()
	}
	h.Write(b[:])
	b = [32]byte{}
	if end != nil {
		b = end.Bytes32()
	}
	h.Write(b[:])
	h.Write(recipient.Bytes())
}
