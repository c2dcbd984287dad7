// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/staker"
	"github.com/posvault/posvault/token"
)

// Reader reads committed accounts. *runtime.Runtime implements it.
type Reader interface {
	Account(addr core.Address) (*accounts.Account, error)
}

// Account is the raw view of a host account.
type Account struct {
	Address core.Address  `json:"address" yaml:"address"`
	Owner   core.Address  `json:"owner" yaml:"owner"`
	Data    hexutil.Bytes `json:"data" yaml:"data"`
}

// Mint is the view of a token mint.
type Mint struct {
	Kind      string       `json:"kind" yaml:"kind"`
	Decimals  uint8        `json:"decimals" yaml:"decimals"`
	Supply    uint64       `json:"supply" yaml:"supply"`
	Authority core.Address `json:"authority" yaml:"authority"`
}

// TokenAccount is the view of a token account.
type TokenAccount struct {
	Kind   string       `json:"kind" yaml:"kind"`
	Mint   core.Address `json:"mint" yaml:"mint"`
	Owner  core.Address `json:"owner" yaml:"owner"`
	Amount uint64       `json:"amount" yaml:"amount"`
}

// State is a stake state together with the addresses derived from it
// and the two balances that must stay equal.
type State struct {
	Address        core.Address `json:"address" yaml:"address"`
	DepositMint    core.Address `json:"depositMint" yaml:"deposit-mint"`
	ReceiptMint    core.Address `json:"receiptMint" yaml:"receipt-mint"`
	Vault          core.Address `json:"vault" yaml:"vault"`
	MintAuthority  core.Address `json:"mintAuthority" yaml:"mint-authority"`
	VaultAuthority core.Address `json:"vaultAuthority" yaml:"vault-authority"`
	ReceiptSupply  uint64       `json:"receiptSupply" yaml:"receipt-supply"`
	VaultBalance   uint64       `json:"vaultBalance" yaml:"vault-balance"`
}

// LoadAccount returns the raw account at addr.
func LoadAccount(r Reader, addr core.Address) (*Account, error) {
	acc, err := r.Account(addr)
	if err != nil {
		return nil, err
	}
	return &Account{Address: addr, Owner: acc.Owner, Data: acc.Data}, nil
}

// LoadToken returns a *Mint or a *TokenAccount for addr.
// Accounts not owned by the token program fail with token.ErrNotToken.
func LoadToken(r Reader, addr core.Address) (any, error) {
	acc, err := r.Account(addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != core.TokenProgramID {
		return nil, errors.Wrap(token.ErrNotToken, addr.String())
	}
	if m, err := token.DecodeMint(acc.Data); err == nil {
		return &Mint{Kind: "mint", Decimals: m.Decimals, Supply: m.Supply, Authority: m.Authority}, nil
	}
	ta, err := token.DecodeAccount(acc.Data)
	if err != nil {
		return nil, err
	}
	return &TokenAccount{Kind: "account", Mint: ta.Mint, Owner: ta.Owner, Amount: ta.Amount}, nil
}

// FindState loads the stake state of depositMint from its canonical address.
func FindState(r Reader, depositMint core.Address) (core.Address, *staker.StakeState, error) {
	addr, _, err := derive.FindAddress(core.StakerProgramID, derive.SeedStakeState, depositMint.Bytes())
	if err != nil {
		return core.Address{}, nil, err
	}
	acc, err := r.Account(addr)
	if err != nil {
		return core.Address{}, nil, errors.WithMessage(err, "load stake state")
	}
	if acc.Owner != core.StakerProgramID {
		return core.Address{}, nil, errors.Wrap(staker.ErrAccountOwnedByWrongProgram, addr.String())
	}
	state, err := staker.DecodeStakeState(acc.Data)
	if err != nil {
		return core.Address{}, nil, err
	}
	return addr, state, nil
}

// LoadState returns the full view of the stake state of depositMint.
func LoadState(r Reader, depositMint core.Address) (*State, error) {
	addr, state, err := FindState(r, depositMint)
	if err != nil {
		return nil, err
	}
	view := State{Address: addr, DepositMint: state.DepositMint, ReceiptMint: state.ReceiptMint}
	if view.Vault, err = derive.VaultAddress(core.StakerProgramID, addr, state.VaultNonce); err != nil {
		return nil, err
	}
	if view.MintAuthority, err = derive.MintAuthorityAddress(core.StakerProgramID, state.MintAuthorityNonce); err != nil {
		return nil, err
	}
	if view.VaultAuthority, err = derive.VaultAuthorityAddress(core.StakerProgramID, state.VaultAuthorityNonce); err != nil {
		return nil, err
	}

	acc, err := r.Account(view.ReceiptMint)
	if err != nil {
		return nil, errors.WithMessage(err, "load receipt mint")
	}
	mint, err := token.DecodeMint(acc.Data)
	if err != nil {
		return nil, err
	}
	view.ReceiptSupply = mint.Supply

	if acc, err = r.Account(view.Vault); err != nil {
		return nil, errors.WithMessage(err, "load vault")
	}
	vault, err := token.DecodeAccount(acc.Data)
	if err != nil {
		return nil, err
	}
	view.VaultBalance = vault.Amount
	return &view, nil
}
