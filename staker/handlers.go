// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"
)

// Initialize creates the stake state of a deposit mint, its receipt mint and its vault.
// It fails for a deposit mint that already has a state.
func Initialize(host Host, ledger TokenLedger, a InitializeAccounts, args InitializeArgs) (err error) {
	defer func() { countInstruction("initialize", err) }()
	logger.Debug("initialize", "depositMint", a.DepositMint.AbbrevString(), "admin", a.Admin.AbbrevString())

	checks, err := validateInitialize(host, &a, &args)
	if err != nil {
		return err
	}

	state := &StakeState{
		DepositMint:         a.DepositMint,
		ReceiptMint:         a.ReceiptMint,
		StateNonce:          args.StakeStateNonce,
		VaultNonce:          args.VaultNonce,
		MintAuthorityNonce:  args.MintAuthNonce,
		VaultAuthorityNonce: args.VaultAuthNonce,
	}
	data, err := state.Encode()
	if err != nil {
		return errors.Wrap(err, "encode stake state")
	}
	if err := host.Create(a.StakeState, data, checks.state); err != nil {
		return errors.WithMessage(err, "create stake state")
	}
	if err := ledger.CreateMint(a.ReceiptMint, checks.depositMint.Decimals, a.MintAuthority, checks.receiptMint); err != nil {
		return errors.WithMessage(err, "create receipt mint")
	}
	if err := ledger.CreateAccount(a.Vault, a.DepositMint, a.VaultAuthority, checks.vault); err != nil {
		return errors.WithMessage(err, "create vault")
	}

	logger.Info("stake state initialized",
		"state", a.StakeState.AbbrevString(),
		"depositMint", a.DepositMint.AbbrevString(),
		"receiptMint", a.ReceiptMint.AbbrevString(),
		"decimals", checks.depositMint.Decimals,
	)
	return nil
}

// RegisterStake creates the deposit and receipt accounts of a user.
// It is not idempotent: a second call fails because the accounts exist.
func RegisterStake(host Host, ledger TokenLedger, a RegisterStakeAccounts) (err error) {
	defer func() { countInstruction("register_stake", err) }()
	logger.Debug("register stake", "state", a.StakeState.AbbrevString(), "user", a.User.AbbrevString())

	checks, err := validateRegisterStake(host, &a)
	if err != nil {
		return err
	}
	if err := ledger.CreateAccount(a.UserDeposit, a.DepositMint, a.User, checks.userDeposit); err != nil {
		return errors.WithMessage(err, "create deposit account")
	}
	if err := ledger.CreateAccount(a.UserReceipt, a.ReceiptMint, a.User, checks.userReceipt); err != nil {
		return errors.WithMessage(err, "create receipt account")
	}

	logger.Info("stake registered", "user", a.User.AbbrevString(), "deposit", a.UserDeposit.AbbrevString(), "receipt", a.UserReceipt.AbbrevString())
	return nil
}

// Stake mints amount receipts to the user and moves amount deposits into the vault.
func Stake(host Host, ledger TokenLedger, a StakeAccounts, args AmountArgs) (err error) {
	defer func() { countInstruction("stake", err) }()
	logger.Debug("stake", "user", a.User.AbbrevString(), "amount", args.Amount)

	checks, err := validateStake(host, &a, args.Amount)
	if err != nil {
		return err
	}
	if err := ledger.MintTo(a.ReceiptMint, a.UserReceipt, args.Amount, checks.authority); err != nil {
		return errors.WithMessage(err, "mint receipt")
	}
	if err := ledger.Transfer(a.UserDeposit, a.Vault, args.Amount, checks.signer); err != nil {
		return errors.WithMessage(err, "deposit to vault")
	}

	metricStaked().Add(int64(args.Amount))
	logger.Info("staked", "user", a.User.AbbrevString(), "amount", args.Amount)
	return nil
}

// Unstake releases amount deposits from the vault to the user and burns amount receipts.
func Unstake(host Host, ledger TokenLedger, a UnstakeAccounts, args AmountArgs) (err error) {
	defer func() { countInstruction("unstake", err) }()
	logger.Debug("unstake", "user", a.User.AbbrevString(), "amount", args.Amount)

	checks, err := validateUnstake(host, &a, args.Amount)
	if err != nil {
		return err
	}
	if err := ledger.Transfer(a.Vault, a.UserDeposit, args.Amount, checks.authority); err != nil {
		return errors.WithMessage(err, "withdraw from vault")
	}
	if err := ledger.Burn(a.UserReceipt, a.ReceiptMint, args.Amount, checks.signer); err != nil {
		return errors.WithMessage(err, "burn receipt")
	}

	metricUnstaked().Add(int64(args.Amount))
	logger.Info("unstaked", "user", a.User.AbbrevString(), "amount", args.Amount)
	return nil
}
