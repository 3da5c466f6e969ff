// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// DutchInput is the token leg the swapper pays. Its cost decays upward
// from StartAmount toward EndAmount across the order's decay window.
type DutchInput struct {
	Token       common.Address `json:"token"`
	StartAmount *uint256.Int   `json:"start_amount"`
	EndAmount   *uint256.Int   `json:"end_amount"`
}

// DutchOutput is a token leg the swapper receives. Its payout decays
// downward from StartAmount toward EndAmount across the decay window.
type DutchOutput struct {
	Token       common.Address `json:"token"`
	StartAmount *uint256.Int   `json:"start_amount"`
	EndAmount   *uint256.Int   `json:"end_amount"`
	Recipient   common.Address `json:"recipient"`
}

// InputToken is a resolved input leg. Amount is the live price at the
// resolution instant. MaxAmount carries the order's pre-decay worst-case
// cap (the input EndAmount) so settlement can bound slippage independently
// of the live figure.
type InputToken struct {
	Token     common.Address `json:"token"`
	Amount    *uint256.Int   `json:"amount"`
	MaxAmount *uint256.Int   `json:"max_amount"`
}

// OutputToken is a resolved output leg.
type OutputToken struct {
	Token     common.Address `json:"token"`
	Amount    *uint256.Int   `json:"amount"`
	Recipient common.Address `json:"recipient"`
}
