// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"

	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/metrics"
)

var (
	logger = log.WithContext("pkg", "token")

	metricOps = metrics.LazyCounterVec("token_ops_count", []string{"op"})
)

func SetLogger(l log.Logger) {
	logger = l
}

// Host is the account access the ledger needs. *runtime.Context implements it.
type Host interface {
	Exists(addr core.Address) (bool, error)
	Account(addr core.Address) (*accounts.Account, error)
	Authorize(addr core.Address, auth derive.Authorizer) error
	Create(addr core.Address, data []byte, auth derive.Authorizer) error
	Update(addr core.Address, data []byte) error
}

// Ledger performs token operations for the token program.
type Ledger struct {
	host Host
}

// New creates a ledger over a host whose executing program is the token program.
func New(host Host) *Ledger {
	return &Ledger{host: host}
}

func (l *Ledger) load(addr core.Address) (*accounts.Account, error) {
	acc, err := l.host.Account(addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != core.TokenProgramID {
		return nil, errors.Wrap(ErrNotToken, addr.String())
	}
	return acc, nil
}

// Mint returns the mint at addr.
func (l *Ledger) Mint(addr core.Address) (*Mint, error) {
	acc, err := l.load(addr)
	if err != nil {
		return nil, err
	}
	return DecodeMint(acc.Data)
}

// Account returns the token account at addr.
func (l *Ledger) Account(addr core.Address) (*Account, error) {
	acc, err := l.load(addr)
	if err != nil {
		return nil, err
	}
	return DecodeAccount(acc.Data)
}

func (l *Ledger) create(addr core.Address, data []byte, auth derive.Authorizer) error {
	exists, err := l.host.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrap(ErrAlreadyInUse, addr.String())
	}
	return l.host.Create(addr, data, auth)
}

func (l *Ledger) storeMint(addr core.Address, m *Mint) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return l.host.Update(addr, data)
}

func (l *Ledger) storeAccount(addr core.Address, a *Account) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	return l.host.Update(addr, data)
}

// authorizeOwner checks that auth may act as the owner of a token account.
func (l *Ledger) authorizeOwner(owner core.Address, auth derive.Authorizer) error {
	if auth == nil || auth.Address() != owner {
		return ErrOwnerMismatch
	}
	return l.host.Authorize(owner, auth)
}

// CreateMint creates an empty mint at addr. auth must authorize addr.
func (l *Ledger) CreateMint(addr core.Address, decimals uint8, authority core.Address, auth derive.Authorizer) error {
	data, err := (&Mint{Decimals: decimals, Authority: authority}).Encode()
	if err != nil {
		return err
	}
	if err := l.create(addr, data, auth); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "create_mint"})
	logger.Debug("mint created", "mint", addr.AbbrevString(), "decimals", decimals, "authority", authority.AbbrevString())
	return nil
}

// CreateAccount creates an empty account of mint owned by owner. auth must authorize addr.
func (l *Ledger) CreateAccount(addr, mint, owner core.Address, auth derive.Authorizer) error {
	if _, err := l.Mint(mint); err != nil {
		return errors.Wrap(err, "load mint")
	}
	data, err := (&Account{Mint: mint, Owner: owner}).Encode()
	if err != nil {
		return err
	}
	if err := l.create(addr, data, auth); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "create_account"})
	logger.Debug("account created", "account", addr.AbbrevString(), "mint", mint.AbbrevString(), "owner", owner.AbbrevString())
	return nil
}

// MintTo issues amount new units of mint into to. auth must be the mint authority.
func (l *Ledger) MintTo(mint, to core.Address, amount uint64, auth derive.Authorizer) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	m, err := l.Mint(mint)
	if err != nil {
		return err
	}
	if auth == nil || auth.Address() != m.Authority {
		return ErrMintAuthority
	}
	if err := l.host.Authorize(m.Authority, auth); err != nil {
		return err
	}
	dst, err := l.Account(to)
	if err != nil {
		return err
	}
	if dst.Mint != mint {
		return ErrMintMismatch
	}
	if m.Supply > math.MaxUint64-amount || dst.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	m.Supply += amount
	dst.Amount += amount

	if err := l.storeMint(mint, m); err != nil {
		return err
	}
	if err := l.storeAccount(to, dst); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "mint_to"})
	return nil
}

// Transfer moves amount units between two accounts of the same mint. auth must be the owner of from.
func (l *Ledger) Transfer(from, to core.Address, amount uint64, auth derive.Authorizer) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	src, err := l.Account(from)
	if err != nil {
		return err
	}
	if err := l.authorizeOwner(src.Owner, auth); err != nil {
		return err
	}
	dst, err := l.Account(to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	if dst.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	src.Amount -= amount
	dst.Amount += amount

	if err := l.storeAccount(from, src); err != nil {
		return err
	}
	if err := l.storeAccount(to, dst); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "transfer"})
	return nil
}

// Burn destroys amount units held by addr. auth must be the owner of addr.
func (l *Ledger) Burn(addr, mint core.Address, amount uint64, auth derive.Authorizer) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	src, err := l.Account(addr)
	if err != nil {
		return err
	}
	if err := l.authorizeOwner(src.Owner, auth); err != nil {
		return err
	}
	if src.Mint != mint {
		return ErrMintMismatch
	}
	m, err := l.Mint(mint)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	// supply covers every balance
	if m.Supply < amount {
		return errors.Wrap(ErrOverflow, "supply underflow")
	}
	src.Amount -= amount
	m.Supply -= amount

	if err := l.storeAccount(addr, src); err != nil {
		return err
	}
	if err := l.storeMint(mint, m); err != nil {
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"op": "burn"})
	return nil
}
