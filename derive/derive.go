// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package derive computes program derived addresses and the authorities that sign as them.
//
// A derived address is the blake2b hash of a list of seeds, a one-byte nonce and the owning
// program, accepted only if it is not a point on the secp256k1 curve. No private key exists
// for such an address, so the only way to act as it is to present the seeds and nonce that
// produce it, which is what Authority carries.
package derive

import (
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

const (
	// MaxSeeds is the maximum number of seeds, excluding the nonce.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
)

// Fixed seeds of the staker program.
var (
	SeedMintAuthority  = []byte("mint-auth")
	SeedVaultAuthority = []byte("vault-auth")
	SeedPosMint        = []byte("pos-token")
	SeedStakeState     = []byte("stake-state")
	SeedVault          = []byte("vault")
)

var (
	ErrOnCurve       = errors.New("derived address is on curve")
	ErrMaxSeeds      = errors.New("too many seeds")
	ErrMaxSeedLen    = errors.New("seed too long")
	ErrNoValidNonce  = errors.New("unable to find a valid nonce")
	ErrProofMismatch = errors.New("derivation proof does not match address")
)

var marker = []byte("ProgramDerivedAddress")

// CreateAddress derives the address for the given program, nonce and seeds.
// It returns ErrOnCurve if the resulting address has a valid private key.
func CreateAddress(program core.Address, nonce uint8, seeds ...[]byte) (core.Address, error) {
	if len(seeds) > MaxSeeds {
		return core.Address{}, ErrMaxSeeds
	}
	parts := make([][]byte, 0, len(seeds)+3)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return core.Address{}, ErrMaxSeedLen
		}
		parts = append(parts, seed)
	}
	parts = append(parts, []byte{nonce}, program.Bytes(), marker)

	addr := core.Address(core.Blake2b(parts...))
	if core.IsOnCurve(addr) {
		return core.Address{}, ErrOnCurve
	}
	return addr, nil
}

// FindAddress searches nonces from 255 downwards and returns the first valid address.
func FindAddress(program core.Address, seeds ...[]byte) (core.Address, uint8, error) {
	for n := 255; n >= 0; n-- {
		addr, err := CreateAddress(program, uint8(n), seeds...)
		if err == nil {
			return addr, uint8(n), nil
		}
		if err != ErrOnCurve {
			return core.Address{}, 0, err
		}
	}
	return core.Address{}, 0, ErrNoValidNonce
}

// MintAuthorityAddress is the identity allowed to mint and burn receipt tokens.
func MintAuthorityAddress(program core.Address, nonce uint8) (core.Address, error) {
	return CreateAddress(program, nonce, SeedMintAuthority)
}

// VaultAuthorityAddress is the identity allowed to debit vaults.
func VaultAuthorityAddress(program core.Address, nonce uint8) (core.Address, error) {
	return CreateAddress(program, nonce, SeedVaultAuthority)
}

// StakeStateAddress is where the state bound to depositMint lives.
func StakeStateAddress(program core.Address, depositMint core.Address, nonce uint8) (core.Address, error) {
	return CreateAddress(program, nonce, SeedStakeState, depositMint.Bytes())
}

// ReceiptMintAddress is the receipt mint of a stake state.
func ReceiptMintAddress(program core.Address, stakeState core.Address, nonce uint8) (core.Address, error) {
	return CreateAddress(program, nonce, SeedPosMint, stakeState.Bytes())
}

// VaultAddress is the token account custodying the deposits of a stake state.
func VaultAddress(program core.Address, stakeState core.Address, nonce uint8) (core.Address, error) {
	return CreateAddress(program, nonce, SeedVault, stakeState.Bytes())
}
