// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/runtime"
)

// Instruction codes.
const (
	OpCreateMint byte = iota + 1
	OpCreateAccount
	OpMintTo
	OpTransfer
	OpBurn
)

var (
	ErrUnknownInstruction = errors.New("unknown token instruction")
	ErrNotEnoughAccounts  = errors.New("not enough accounts")
)

type createMintArgs struct {
	Decimals  uint8
	Authority core.Address
}

type createAccountArgs struct {
	Owner core.Address
}

type amountArgs struct {
	Amount uint64
}

// Program exposes the ledger to transactions.
type Program struct{}

var _ runtime.Program = Program{}

// Execute implements runtime.Program.
func (Program) Execute(ctx *runtime.Context, metas []runtime.AccountMeta, data []byte) error {
	if len(data) == 0 {
		return ErrUnknownInstruction
	}
	ledger := New(ctx)
	op, payload := data[0], data[1:]

	need := map[byte]int{OpCreateMint: 1, OpCreateAccount: 2, OpMintTo: 3, OpTransfer: 3, OpBurn: 3}[op]
	if need == 0 {
		return errors.Wrapf(ErrUnknownInstruction, "op %d", op)
	}
	if len(metas) < need {
		return ErrNotEnoughAccounts
	}

	switch op {
	case OpCreateMint:
		var args createMintArgs
		if err := rlp.DecodeBytes(payload, &args); err != nil {
			return errors.Wrap(err, "decode create-mint")
		}
		auth, err := ctx.Signer(metas[0].Address)
		if err != nil {
			return err
		}
		return ledger.CreateMint(metas[0].Address, args.Decimals, args.Authority, auth)
	case OpCreateAccount:
		var args createAccountArgs
		if err := rlp.DecodeBytes(payload, &args); err != nil {
			return errors.Wrap(err, "decode create-account")
		}
		auth, err := ctx.Signer(metas[0].Address)
		if err != nil {
			return err
		}
		return ledger.CreateAccount(metas[0].Address, metas[1].Address, args.Owner, auth)
	}

	var args amountArgs
	if err := rlp.DecodeBytes(payload, &args); err != nil {
		return errors.Wrap(err, "decode amount")
	}
	auth, err := ctx.Signer(metas[2].Address)
	if err != nil {
		return err
	}
	switch op {
	case OpMintTo:
		return ledger.MintTo(metas[0].Address, metas[1].Address, args.Amount, auth)
	case OpTransfer:
		return ledger.Transfer(metas[0].Address, metas[1].Address, args.Amount, auth)
	default:
		return ledger.Burn(metas[0].Address, metas[1].Address, args.Amount, auth)
	}
}

func instruction(op byte, args any, metas ...runtime.AccountMeta) *runtime.Instruction {
	data, err := rlp.EncodeToBytes(args)
	if err != nil {
		panic(errors.Wrap(err, "encode token instruction"))
	}
	return &runtime.Instruction{
		Program:  core.TokenProgramID,
		Accounts: metas,
		Data:     append([]byte{op}, data...),
	}
}

// NewCreateMintInstruction creates a mint at a fresh key address, which must sign.
func NewCreateMintInstruction(mint core.Address, decimals uint8, authority core.Address) *runtime.Instruction {
	return instruction(OpCreateMint, &createMintArgs{decimals, authority},
		runtime.AccountMeta{Address: mint, IsSigner: true, IsWritable: true},
	)
}

// NewCreateAccountInstruction creates a token account at a fresh key address, which must sign.
func NewCreateAccountInstruction(account, mint, owner core.Address) *runtime.Instruction {
	return instruction(OpCreateAccount, &createAccountArgs{owner},
		runtime.AccountMeta{Address: account, IsSigner: true, IsWritable: true},
		runtime.AccountMeta{Address: mint},
	)
}

// NewMintToInstruction mints amount into to, signed by the mint authority.
func NewMintToInstruction(mint, to, authority core.Address, amount uint64) *runtime.Instruction {
	return instruction(OpMintTo, &amountArgs{amount},
		runtime.AccountMeta{Address: mint, IsWritable: true},
		runtime.AccountMeta{Address: to, IsWritable: true},
		runtime.AccountMeta{Address: authority, IsSigner: true},
	)
}

// NewTransferInstruction moves amount from from to to, signed by the owner of from.
func NewTransferInstruction(from, to, owner core.Address, amount uint64) *runtime.Instruction {
	return instruction(OpTransfer, &amountArgs{amount},
		runtime.AccountMeta{Address: from, IsWritable: true},
		runtime.AccountMeta{Address: to, IsWritable: true},
		runtime.AccountMeta{Address: owner, IsSigner: true},
	)
}

// NewBurnInstruction burns amount held by account, signed by its owner.
func NewBurnInstruction(account, mint, owner core.Address, amount uint64) *runtime.Instruction {
	return instruction(OpBurn, &amountArgs{amount},
		runtime.AccountMeta{Address: account, IsWritable: true},
		runtime.AccountMeta{Address: mint, IsWritable: true},
		runtime.AccountMeta{Address: owner, IsSigner: true},
	)
}
