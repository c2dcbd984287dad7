// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAlreadyExists = errors.New("account already exists")
)

// Account is an opaque data record owned by a program.
// Only the owner may change Data.
type Account struct {
	Owner core.Address
	Data  []byte
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	return &Account{
		Owner: a.Owner,
		Data:  bytes.Clone(a.Data),
	}
}

func encodeAccount(acc *Account) ([]byte, error) {
	return rlp.EncodeToBytes(acc)
}

func decodeAccount(data []byte) (*Account, error) {
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	return &acc, nil
}
