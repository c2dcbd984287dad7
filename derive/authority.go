// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package derive

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

// Authorizer is an identity presented to authorize an action as Address.
type Authorizer interface {
	Address() core.Address
}

// Authority is the capability to act as a derived address.
// It can only be built from the seeds and nonce that derive the address.
type Authority struct {
	program core.Address
	address core.Address
	nonce   uint8
	seeds   [][]byte
}

var _ Authorizer = (*Authority)(nil)

// NewAuthority derives the address and returns the proof for it.
func NewAuthority(program core.Address, nonce uint8, seeds ...[]byte) (*Authority, error) {
	addr, err := CreateAddress(program, nonce, seeds...)
	if err != nil {
		return nil, err
	}
	copied := make([][]byte, len(seeds))
	for i, seed := range seeds {
		copied[i] = bytes.Clone(seed)
	}
	return &Authority{
		program: program,
		address: addr,
		nonce:   nonce,
		seeds:   copied,
	}, nil
}

// Address returns the derived address.
func (a *Authority) Address() core.Address { return a.address }

// Program returns the program the address is derived for.
func (a *Authority) Program() core.Address { return a.program }

// Nonce returns the nonce used in the derivation.
func (a *Authority) Nonce() uint8 { return a.nonce }

// Seeds returns a copy of the seeds, excluding the nonce.
func (a *Authority) Seeds() [][]byte {
	out := make([][]byte, len(a.seeds))
	for i, seed := range a.seeds {
		out[i] = bytes.Clone(seed)
	}
	return out
}

// Verify re-derives the address from the proof. Any failure is reported
// as ErrProofMismatch.
func (a *Authority) Verify() error {
	if a == nil {
		return ErrProofMismatch
	}
	addr, err := CreateAddress(a.program, a.nonce, a.seeds...)
	if err != nil {
		return errors.WithMessage(ErrProofMismatch, err.Error())
	}
	if addr != a.address {
		return ErrProofMismatch
	}
	return nil
}

// MintAuthority returns the mint authority proof.
func MintAuthority(program core.Address, nonce uint8) (*Authority, error) {
	return NewAuthority(program, nonce, SeedMintAuthority)
}

// VaultAuthority returns the vault authority proof.
func VaultAuthority(program core.Address, nonce uint8) (*Authority, error) {
	return NewAuthority(program, nonce, SeedVaultAuthority)
}

// StakeState returns the proof for creating the stake state of depositMint.
func StakeState(program core.Address, depositMint core.Address, nonce uint8) (*Authority, error) {
	return NewAuthority(program, nonce, SeedStakeState, depositMint.Bytes())
}

// ReceiptMint returns the proof for creating the receipt mint of a stake state.
func ReceiptMint(program core.Address, stakeState core.Address, nonce uint8) (*Authority, error) {
	return NewAuthority(program, nonce, SeedPosMint, stakeState.Bytes())
}

// Vault returns the proof for creating the vault of a stake state.
func Vault(program core.Address, stakeState core.Address, nonce uint8) (*Authority, error) {
	return NewAuthority(program, nonce, SeedVault, stakeState.Bytes())
}
