// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/token"
)

// The validators below run every check of an instruction before its first mutation and
// return the first violation. What they return is everything the handler needs to sign.

type initializeChecks struct {
	depositMint *token.Mint
	state       *derive.Authority
	receiptMint *derive.Authority
	vault       *derive.Authority
}

type registerChecks struct {
	userDeposit derive.Authorizer
	userReceipt derive.Authorizer
}

type positionChecks struct {
	signer    derive.Authorizer
	authority *derive.Authority
}

func checkSeeds(got core.Address, auth *derive.Authority, err error) error {
	if err != nil {
		return errors.Wrap(ErrSeedsConstraint, err.Error())
	}
	if auth.Address() != got {
		return errors.Wrapf(ErrSeedsConstraint, "expected %v, got %v", auth.Address(), got)
	}
	return nil
}

func loadAccount(host Host, addr core.Address) (*accounts.Account, error) {
	acc, err := host.Account(addr)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, errors.Wrap(ErrAccountNotInitialized, addr.String())
		}
		return nil, err
	}
	return acc, nil
}

// loadState loads the state at addr and checks it lives at its own derived address.
func loadState(host Host, addr core.Address) (*StakeState, error) {
	acc, err := loadAccount(host, addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != host.Program() {
		return nil, errors.Wrap(ErrAccountOwnedByWrongProgram, addr.String())
	}
	state, err := DecodeStakeState(acc.Data)
	if err != nil {
		return nil, err
	}
	auth, err := derive.StakeState(host.Program(), state.DepositMint, state.StateNonce)
	if err := checkSeeds(addr, auth, err); err != nil {
		return nil, err
	}
	return state, nil
}

func loadTokenAccount(host Host, addr core.Address) (*token.Account, error) {
	acc, err := loadAccount(host, addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != core.TokenProgramID {
		return nil, errors.Wrap(ErrInvalidTokenAccountOwner, addr.String())
	}
	ta, err := token.DecodeAccount(acc.Data)
	if err != nil {
		return nil, errors.Wrap(ErrTokenAccountMismatch, addr.String())
	}
	return ta, nil
}

func loadMint(host Host, addr core.Address) (*token.Mint, error) {
	acc, err := loadAccount(host, addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != core.TokenProgramID {
		return nil, errors.Wrap(ErrInvalidTokenAccountOwner, addr.String())
	}
	m, err := token.DecodeMint(acc.Data)
	if err != nil {
		return nil, errors.Wrap(ErrTokenAccountMismatch, addr.String())
	}
	return m, nil
}

func validateInitialize(host Host, a *InitializeAccounts, args *InitializeArgs) (*initializeChecks, error) {
	program := host.Program()
	var (
		checks initializeChecks
		err    error
	)
	if _, err = host.Signer(a.Admin); err != nil {
		return nil, err
	}
	if checks.depositMint, err = loadMint(host, a.DepositMint); err != nil {
		return nil, err
	}

	checks.state, err = derive.StakeState(program, a.DepositMint, args.StakeStateNonce)
	if err := checkSeeds(a.StakeState, checks.state, err); err != nil {
		return nil, errors.WithMessage(err, "stake state")
	}
	checks.receiptMint, err = derive.ReceiptMint(program, a.StakeState, args.PosMintNonce)
	if err := checkSeeds(a.ReceiptMint, checks.receiptMint, err); err != nil {
		return nil, errors.WithMessage(err, "receipt mint")
	}
	checks.vault, err = derive.Vault(program, a.StakeState, args.VaultNonce)
	if err := checkSeeds(a.Vault, checks.vault, err); err != nil {
		return nil, errors.WithMessage(err, "vault")
	}
	mintAuth, err := derive.MintAuthority(program, args.MintAuthNonce)
	if err := checkSeeds(a.MintAuthority, mintAuth, err); err != nil {
		return nil, errors.WithMessage(err, "mint authority")
	}
	vaultAuth, err := derive.VaultAuthority(program, args.VaultAuthNonce)
	if err := checkSeeds(a.VaultAuthority, vaultAuth, err); err != nil {
		return nil, errors.WithMessage(err, "vault authority")
	}

	exists, err := host.Exists(a.StakeState)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrap(accounts.ErrAlreadyExists, "stake state")
	}
	return &checks, nil
}

func validateRegisterStake(host Host, a *RegisterStakeAccounts) (*registerChecks, error) {
	state, err := loadState(host, a.StakeState)
	if err != nil {
		return nil, err
	}
	if _, err := host.Signer(a.User); err != nil {
		return nil, err
	}
	if a.DepositMint != state.DepositMint {
		return nil, ErrXtokenMintMismatch
	}
	if a.ReceiptMint != state.ReceiptMint {
		return nil, ErrPosMintMismatch
	}

	var checks registerChecks
	// the new accounts are fresh keys, which must sign for their own creation
	if checks.userDeposit, err = host.Signer(a.UserDeposit); err != nil {
		return nil, err
	}
	if checks.userReceipt, err = host.Signer(a.UserReceipt); err != nil {
		return nil, err
	}
	return &checks, nil
}

func validateStake(host Host, a *StakeAccounts, amount uint64) (*positionChecks, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	state, err := loadState(host, a.StakeState)
	if err != nil {
		return nil, err
	}
	signer, err := host.Signer(a.User)
	if err != nil {
		return nil, err
	}

	// 1. deposit mint
	if a.DepositMint != state.DepositMint {
		return nil, ErrXtokenMintMismatch
	}
	// 2. user deposit account
	deposit, err := loadTokenAccount(host, a.UserDeposit)
	if err != nil {
		return nil, err
	}
	if deposit.Owner != a.User {
		return nil, ErrXtokenOwnerMismatch
	}
	if deposit.Mint != a.DepositMint {
		return nil, ErrXtokenMintMismatch
	}
	if deposit.Amount < amount {
		return nil, ErrInsufficientFunds
	}
	// 3. receipt mint
	if a.ReceiptMint != state.ReceiptMint {
		return nil, ErrPosMintMismatch
	}
	// 4. user receipt account
	receipt, err := loadTokenAccount(host, a.UserReceipt)
	if err != nil {
		return nil, err
	}
	if receipt.Owner != a.User {
		return nil, ErrPosOwnerMismatch
	}
	if receipt.Mint != a.ReceiptMint {
		return nil, ErrPosMintMismatch
	}
	// 5. vault
	vault, err := derive.Vault(host.Program(), a.StakeState, state.VaultNonce)
	if err := checkSeeds(a.Vault, vault, err); err != nil {
		return nil, errors.WithMessage(err, "vault")
	}
	if _, err := loadTokenAccount(host, a.Vault); err != nil {
		return nil, err
	}
	// 6. mint authority
	mintAuth, err := derive.MintAuthority(host.Program(), state.MintAuthorityNonce)
	if err := checkSeeds(a.MintAuthority, mintAuth, err); err != nil {
		return nil, errors.WithMessage(err, "mint authority")
	}

	return &positionChecks{signer: signer, authority: mintAuth}, nil
}

func validateUnstake(host Host, a *UnstakeAccounts, amount uint64) (*positionChecks, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	state, err := loadState(host, a.StakeState)
	if err != nil {
		return nil, err
	}
	signer, err := host.Signer(a.User)
	if err != nil {
		return nil, err
	}

	// 1. deposit mint
	if a.DepositMint != state.DepositMint {
		return nil, ErrXtokenMintMismatch
	}
	// 2. user deposit account
	deposit, err := loadTokenAccount(host, a.UserDeposit)
	if err != nil {
		return nil, err
	}
	if deposit.Owner != a.User {
		return nil, ErrXtokenOwnerMismatch
	}
	if deposit.Mint != a.DepositMint {
		return nil, ErrXtokenMintMismatch
	}
	// 3. receipt mint
	if a.ReceiptMint != state.ReceiptMint {
		return nil, ErrPosMintMismatch
	}
	// 4. user receipt account
	receipt, err := loadTokenAccount(host, a.UserReceipt)
	if err != nil {
		return nil, err
	}
	if receipt.Owner != a.User {
		return nil, ErrPosOwnerMismatch
	}
	if receipt.Mint != a.ReceiptMint {
		return nil, ErrPosMintMismatch
	}
	if receipt.Amount < amount {
		return nil, ErrInsufficientStakeAmount
	}
	// 5. vault
	vault, err := derive.Vault(host.Program(), a.StakeState, state.VaultNonce)
	if err := checkSeeds(a.Vault, vault, err); err != nil {
		return nil, errors.WithMessage(err, "vault")
	}
	if _, err := loadTokenAccount(host, a.Vault); err != nil {
		return nil, err
	}
	// 6. vault authority
	vaultAuth, err := derive.VaultAuthority(host.Program(), state.VaultAuthorityNonce)
	if err := checkSeeds(a.VaultAuthority, vaultAuth, err); err != nil {
		return nil, errors.WithMessage(err, "vault authority")
	}

	return &positionChecks{signer: signer, authority: vaultAuth}, nil
}
