// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

// AccountMeta declares an account an instruction touches.
type AccountMeta struct {
	Address    core.Address
	IsSigner   bool
	IsWritable bool
}

// Instruction is a call into one program.
type Instruction struct {
	Program  core.Address
	Accounts []AccountMeta
	Data     []byte
}

// Tx is an ordered list of instructions executed atomically.
type Tx struct {
	body struct {
		Nonce        uint64
		Instructions []*Instruction
	}
	signatures [][]byte
}

// NewTx creates an unsigned transaction. The nonce distinguishes otherwise equal
// transactions: a runtime commits each signing hash at most once, so callers
// repeating an operation must pick a fresh nonce.
func NewTx(nonce uint64, instructions ...*Instruction) *Tx {
	tx := &Tx{}
	tx.body.Nonce = nonce
	tx.body.Instructions = instructions
	return tx
}

// Nonce returns the nonce.
func (t *Tx) Nonce() uint64 { return t.body.Nonce }

// Instructions returns the instructions.
func (t *Tx) Instructions() []*Instruction { return t.body.Instructions }

// SigningHash returns the hash signers sign.
func (t *Tx) SigningHash() (h [32]byte) {
	data, err := rlp.EncodeToBytes(&t.body)
	if err != nil {
		panic(errors.Wrap(err, "encode tx body"))
	}
	return core.Blake2b(data)
}

// WithSignatures returns a copy of the tx signed additionally by keys.
func (t *Tx) WithSignatures(keys ...*secp256k1.PrivateKey) *Tx {
	hash := t.SigningHash()
	signed := *t
	signed.signatures = append([][]byte(nil), t.signatures...)
	for _, key := range keys {
		signed.signatures = append(signed.signatures, ecdsa.SignCompact(key, hash[:], true))
	}
	return &signed
}

// Signers recovers the addresses that signed the tx.
func (t *Tx) Signers() (map[core.Address]bool, error) {
	hash := t.SigningHash()
	signers := make(map[core.Address]bool, len(t.signatures))
	for i, sig := range t.signatures {
		pub, _, err := ecdsa.RecoverCompact(sig, hash[:])
		if err != nil {
			return nil, errors.Wrapf(err, "recover signature %d", i)
		}
		signers[core.PubKeyToAddress(pub)] = true
	}
	return signers, nil
}

// accounts returns every address referenced by the tx.
func (t *Tx) accounts() []core.Address {
	var addrs []core.Address
	for _, ins := range t.body.Instructions {
		for _, meta := range ins.Accounts {
			addrs = append(addrs, meta.Address)
		}
	}
	return addrs
}
