// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/runtime"
)

var (
	initializeDiscriminator    = discriminator("global", "initialize")
	registerStakeDiscriminator = discriminator("global", "register_stake")
	stakeDiscriminator         = discriminator("global", "stake")
	unstakeDiscriminator       = discriminator("global", "unstake")
)

// InitializeArgs carries the nonces of every address created by Initialize.
type InitializeArgs struct {
	PosMintNonce    uint8
	StakeStateNonce uint8
	VaultAuthNonce  uint8
	VaultNonce      uint8
	MintAuthNonce   uint8
}

// AmountArgs is the argument of Stake and Unstake.
type AmountArgs struct {
	Amount uint64
}

type InitializeAccounts struct {
	Admin          core.Address
	DepositMint    core.Address
	ReceiptMint    core.Address
	StakeState     core.Address
	Vault          core.Address
	MintAuthority  core.Address
	VaultAuthority core.Address
}

type RegisterStakeAccounts struct {
	StakeState  core.Address
	User        core.Address
	DepositMint core.Address
	UserDeposit core.Address
	ReceiptMint core.Address
	UserReceipt core.Address
}

type StakeAccounts struct {
	StakeState    core.Address
	User          core.Address
	DepositMint   core.Address
	UserDeposit   core.Address
	ReceiptMint   core.Address
	UserReceipt   core.Address
	Vault         core.Address
	MintAuthority core.Address
}

type UnstakeAccounts struct {
	StakeState     core.Address
	User           core.Address
	DepositMint    core.Address
	UserDeposit    core.Address
	ReceiptMint    core.Address
	UserReceipt    core.Address
	Vault          core.Address
	VaultAuthority core.Address
}

// FindInitializeArgs searches the nonces of every address Initialize creates for depositMint.
func FindInitializeArgs(program, admin, depositMint core.Address) (InitializeAccounts, InitializeArgs, error) {
	var (
		a    = InitializeAccounts{Admin: admin, DepositMint: depositMint}
		args InitializeArgs
		err  error
	)
	if a.StakeState, args.StakeStateNonce, err = derive.FindAddress(program, derive.SeedStakeState, depositMint.Bytes()); err != nil {
		return a, args, err
	}
	if a.ReceiptMint, args.PosMintNonce, err = derive.FindAddress(program, derive.SeedPosMint, a.StakeState.Bytes()); err != nil {
		return a, args, err
	}
	if a.Vault, args.VaultNonce, err = derive.FindAddress(program, derive.SeedVault, a.StakeState.Bytes()); err != nil {
		return a, args, err
	}
	if a.MintAuthority, args.MintAuthNonce, err = derive.FindAddress(program, derive.SeedMintAuthority); err != nil {
		return a, args, err
	}
	if a.VaultAuthority, args.VaultAuthNonce, err = derive.FindAddress(program, derive.SeedVaultAuthority); err != nil {
		return a, args, err
	}
	return a, args, nil
}

// NewStakeAccounts fills the program addresses of a stake from its state.
func NewStakeAccounts(program, stateAddr core.Address, state *StakeState, user, userDeposit, userReceipt core.Address) (StakeAccounts, error) {
	vault, err := derive.VaultAddress(program, stateAddr, state.VaultNonce)
	if err != nil {
		return StakeAccounts{}, err
	}
	mintAuth, err := derive.MintAuthorityAddress(program, state.MintAuthorityNonce)
	if err != nil {
		return StakeAccounts{}, err
	}
	return StakeAccounts{
		StakeState:    stateAddr,
		User:          user,
		DepositMint:   state.DepositMint,
		UserDeposit:   userDeposit,
		ReceiptMint:   state.ReceiptMint,
		UserReceipt:   userReceipt,
		Vault:         vault,
		MintAuthority: mintAuth,
	}, nil
}

// NewUnstakeAccounts fills the program addresses of an unstake from its state.
func NewUnstakeAccounts(program, stateAddr core.Address, state *StakeState, user, userDeposit, userReceipt core.Address) (UnstakeAccounts, error) {
	vault, err := derive.VaultAddress(program, stateAddr, state.VaultNonce)
	if err != nil {
		return UnstakeAccounts{}, err
	}
	vaultAuth, err := derive.VaultAuthorityAddress(program, state.VaultAuthorityNonce)
	if err != nil {
		return UnstakeAccounts{}, err
	}
	return UnstakeAccounts{
		StakeState:     stateAddr,
		User:           user,
		DepositMint:    state.DepositMint,
		UserDeposit:    userDeposit,
		ReceiptMint:    state.ReceiptMint,
		UserReceipt:    userReceipt,
		Vault:          vault,
		VaultAuthority: vaultAuth,
	}, nil
}

func meta(addr core.Address, signer, writable bool) runtime.AccountMeta {
	return runtime.AccountMeta{Address: addr, IsSigner: signer, IsWritable: writable}
}

func (a *InitializeAccounts) metas() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		meta(a.Admin, true, true),
		meta(a.DepositMint, false, false),
		meta(a.ReceiptMint, false, true),
		meta(a.StakeState, false, true),
		meta(a.Vault, false, true),
		meta(a.MintAuthority, false, false),
		meta(a.VaultAuthority, false, false),
	}
}

func (a *RegisterStakeAccounts) metas() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		meta(a.StakeState, false, false),
		meta(a.User, true, true),
		meta(a.DepositMint, false, false),
		meta(a.UserDeposit, true, true),
		meta(a.ReceiptMint, false, false),
		meta(a.UserReceipt, true, true),
	}
}

func (a *StakeAccounts) metas() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		meta(a.StakeState, false, false),
		meta(a.User, true, false),
		meta(a.DepositMint, false, false),
		meta(a.UserDeposit, false, true),
		meta(a.ReceiptMint, false, true),
		meta(a.UserReceipt, false, true),
		meta(a.Vault, false, true),
		meta(a.MintAuthority, false, false),
	}
}

func (a *UnstakeAccounts) metas() []runtime.AccountMeta {
	return []runtime.AccountMeta{
		meta(a.StakeState, false, false),
		meta(a.User, true, false),
		meta(a.DepositMint, false, false),
		meta(a.UserDeposit, false, true),
		meta(a.ReceiptMint, false, true),
		meta(a.UserReceipt, false, true),
		meta(a.Vault, false, true),
		meta(a.VaultAuthority, false, false),
	}
}

func newInstruction(disc []byte, args any, metas []runtime.AccountMeta) *runtime.Instruction {
	data := append([]byte(nil), disc...)
	if args != nil {
		enc, err := rlp.EncodeToBytes(args)
		if err != nil {
			panic(errors.Wrap(err, "encode instruction args"))
		}
		data = append(data, enc...)
	}
	return &runtime.Instruction{
		Program:  core.StakerProgramID,
		Accounts: metas,
		Data:     data,
	}
}

func NewInitializeInstruction(a InitializeAccounts, args InitializeArgs) *runtime.Instruction {
	return newInstruction(initializeDiscriminator, &args, a.metas())
}

func NewRegisterStakeInstruction(a RegisterStakeAccounts) *runtime.Instruction {
	return newInstruction(registerStakeDiscriminator, nil, a.metas())
}

func NewStakeInstruction(a StakeAccounts, amount uint64) *runtime.Instruction {
	return newInstruction(stakeDiscriminator, &AmountArgs{amount}, a.metas())
}

func NewUnstakeInstruction(a UnstakeAccounts, amount uint64) *runtime.Instruction {
	return newInstruction(unstakeDiscriminator, &AmountArgs{amount}, a.metas())
}
