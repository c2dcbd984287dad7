// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

// DiscriminatorLen is the length of account and instruction type tags.
const DiscriminatorLen = 8

func discriminator(namespace, name string) []byte {
	h := core.Blake2b([]byte(namespace + ":" + name))
	return h[:DiscriminatorLen]
}

var stakeStateDiscriminator = discriminator("account", "StakeState")

// StakeState binds a deposit mint to its receipt mint.
// The nonces re-derive every program address of the pair.
type StakeState struct {
	DepositMint         core.Address
	ReceiptMint         core.Address
	StateNonce          uint8
	VaultNonce          uint8
	MintAuthorityNonce  uint8
	VaultAuthorityNonce uint8
}

// Encode returns the account data of the state.
func (s *StakeState) Encode() ([]byte, error) {
	enc, err := rlp.EncodeToBytes(s)
	if err != nil {
		return nil, err
	}
	return append(bytes.Clone(stakeStateDiscriminator), enc...), nil
}

// DecodeStakeState decodes account data written by Encode.
func DecodeStakeState(data []byte) (*StakeState, error) {
	if len(data) < DiscriminatorLen || !bytes.Equal(data[:DiscriminatorLen], stakeStateDiscriminator) {
		return nil, ErrAccountDiscriminatorMismatch
	}
	var s StakeState
	if err := rlp.DecodeBytes(data[DiscriminatorLen:], &s); err != nil {
		return nil, errors.Wrap(ErrAccountDidNotDeserialize, err.Error())
	}
	return &s, nil
}
