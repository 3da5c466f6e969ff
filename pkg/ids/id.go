// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// IDLen is the length of an order ID in bytes
const IDLen = 32

// ID uniquely identifies a Dutch order. It is the keccak hash of the
// order's canonical encoding.
type ID [IDLen]byte

// Empty is the zero ID
var Empty = ID{}

// GenerateTestID creates a random ID for testing
func GenerateTestID() ID {
	var id ID
	rand.Read(id[:])
	return id
}

// String returns the 0x-prefixed hex representation of the ID
func (id ID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bytes returns the byte representation of the ID
func (id ID) Bytes() []byte {
	return id[:]
}

// IsEmpty returns true if the ID is all zeroes
func (id ID) IsEmpty() bool {
	return id == ID{}
}

// MarshalText implements encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := FromString(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FromString creates an ID from a hex string, with or without a 0x prefix
func FromString(s string) (ID, error) {
	var id ID
	s = strings.TrimPrefix(s, "0x")
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(bytes) != IDLen {
		return id, fmt.Errorf("invalid ID length: expected %d, got %d", IDLen, len(bytes))
	}
	copy(id[:], bytes)
	return id, nil
}

// FromBytes creates an ID from raw bytes
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, fmt.Errorf("invalid ID length: expected %d, got %d", IDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}
