// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a minimal fungible token ledger: mints and the accounts holding their units.
//
// Records are host accounts owned by core.TokenProgramID. Every privileged change is
// authorized through the host, which accepts transaction signers and derived authorities.
package token

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

const (
	kindMint    byte = 1
	kindAccount byte = 2
)

// Mint is a token type.
type Mint struct {
	Decimals  uint8
	Supply    uint64
	Authority core.Address
}

// Account holds units of one mint for one owner.
type Account struct {
	Mint   core.Address
	Owner  core.Address
	Amount uint64
}

// Encode returns the account data of the mint.
func (m *Mint) Encode() ([]byte, error) {
	return encode(kindMint, m)
}

// Encode returns the account data of the token account.
func (a *Account) Encode() ([]byte, error) {
	return encode(kindAccount, a)
}

// DecodeMint decodes mint data. Data of another kind fails with ErrInvalidAccountData.
func DecodeMint(data []byte) (*Mint, error) {
	var m Mint
	if err := decode(kindMint, data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeAccount decodes token account data.
func DecodeAccount(data []byte) (*Account, error) {
	var a Account
	if err := decode(kindAccount, data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func encode(kind byte, val any) ([]byte, error) {
	enc, err := rlp.EncodeToBytes(val)
	if err != nil {
		return nil, err
	}
	return append([]byte{kind}, enc...), nil
}

func decode(kind byte, data []byte, val any) error {
	if len(data) == 0 || data[0] != kind {
		return ErrInvalidAccountData
	}
	if err := rlp.DecodeBytes(data[1:], val); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	return nil
}
