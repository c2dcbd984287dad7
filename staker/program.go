// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/runtime"
	"github.com/posvault/posvault/token"
)

// Program decodes instructions and dispatches them to the handlers.
type Program struct{}

var _ runtime.Program = Program{}

func decodeArgs(data []byte, val any) error {
	if err := rlp.DecodeBytes(data, val); err != nil {
		return errors.Wrap(ErrInstructionDidNotDeserialize, err.Error())
	}
	return nil
}

func address(metas []runtime.AccountMeta, n int) ([]core.Address, error) {
	if len(metas) < n {
		return nil, errors.Wrapf(ErrNotEnoughAccounts, "want %d, got %d", n, len(metas))
	}
	addrs := make([]core.Address, n)
	for i := range addrs {
		addrs[i] = metas[i].Address
	}
	return addrs, nil
}

// Execute implements runtime.Program.
func (Program) Execute(ctx *runtime.Context, metas []runtime.AccountMeta, data []byte) error {
	if len(data) < DiscriminatorLen {
		return ErrInstructionMissing
	}
	disc, payload := data[:DiscriminatorLen], data[DiscriminatorLen:]

	tokenCtx, err := ctx.Invoke(core.TokenProgramID)
	if err != nil {
		return err
	}
	ledger := token.New(tokenCtx)

	switch {
	case bytes.Equal(disc, initializeDiscriminator):
		var args InitializeArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		addrs, err := address(metas, 7)
		if err != nil {
			return err
		}
		return Initialize(ctx, ledger, InitializeAccounts{
			Admin:          addrs[0],
			DepositMint:    addrs[1],
			ReceiptMint:    addrs[2],
			StakeState:     addrs[3],
			Vault:          addrs[4],
			MintAuthority:  addrs[5],
			VaultAuthority: addrs[6],
		}, args)

	case bytes.Equal(disc, registerStakeDiscriminator):
		addrs, err := address(metas, 6)
		if err != nil {
			return err
		}
		return RegisterStake(ctx, ledger, RegisterStakeAccounts{
			StakeState:  addrs[0],
			User:        addrs[1],
			DepositMint: addrs[2],
			UserDeposit: addrs[3],
			ReceiptMint: addrs[4],
			UserReceipt: addrs[5],
		})

	case bytes.Equal(disc, stakeDiscriminator):
		var args AmountArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		addrs, err := address(metas, 8)
		if err != nil {
			return err
		}
		return Stake(ctx, ledger, StakeAccounts{
			StakeState:    addrs[0],
			User:          addrs[1],
			DepositMint:   addrs[2],
			UserDeposit:   addrs[3],
			ReceiptMint:   addrs[4],
			UserReceipt:   addrs[5],
			Vault:         addrs[6],
			MintAuthority: addrs[7],
		}, args)

	case bytes.Equal(disc, unstakeDiscriminator):
		var args AmountArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		addrs, err := address(metas, 8)
		if err != nil {
			return err
		}
		return Unstake(ctx, ledger, UnstakeAccounts{
			StakeState:     addrs[0],
			User:           addrs[1],
			DepositMint:    addrs[2],
			UserDeposit:    addrs[3],
			ReceiptMint:    addrs[4],
			UserReceipt:    addrs[5],
			Vault:          addrs[6],
			VaultAuthority: addrs[7],
		}, args)
	}
	return ErrInstructionNotFound
}
