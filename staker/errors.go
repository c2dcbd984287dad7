// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/posvault/posvault/reverts"

// Program errors.
var (
	ErrInsufficientFunds        = reverts.New(300, "insufficient funds")
	ErrTokenAccountMismatch     = reverts.New(301, "token account doesn't match")
	ErrInvalidTokenAccountOwner = reverts.New(302, "invalid token account owner")
	ErrXtokenOwnerMismatch      = reverts.New(303, "xtoken owner mismatch")
	ErrXtokenMintMismatch       = reverts.New(304, "xtoken mint mismatch")
	ErrPosOwnerMismatch         = reverts.New(305, "pos owner mismatch")
	ErrPosMintMismatch          = reverts.New(306, "pos mint mismatch")
	ErrInsufficientStakeAmount  = reverts.New(307, "insufficient stake amount")
	ErrInvalidAmount            = reverts.New(308, "amount must be greater than zero")
)

// Framework errors.
var (
	ErrInstructionMissing           = reverts.New(100, "instruction discriminator not provided")
	ErrInstructionNotFound          = reverts.New(101, "instruction not found")
	ErrInstructionDidNotDeserialize = reverts.New(102, "instruction did not deserialize")
	ErrSeedsConstraint              = reverts.New(2006, "seeds constraint was violated")
	ErrAccountDiscriminatorMismatch = reverts.New(3001, "account discriminator mismatch")
	ErrAccountDidNotDeserialize     = reverts.New(3003, "account did not deserialize")
	ErrNotEnoughAccounts            = reverts.New(3005, "not enough account keys given to the instruction")
	ErrAccountOwnedByWrongProgram   = reverts.New(3007, "account owned by a different program")
	ErrAccountNotInitialized        = reverts.New(3012, "account not initialized")
)
