// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
)

// TokenLedger holds the balances. The staker only calls its mutating operations;
// reads go through Host so that validation never touches the ledger.
type TokenLedger interface {
	CreateMint(mint core.Address, decimals uint8, authority core.Address, auth derive.Authorizer) error
	CreateAccount(addr, mint, owner core.Address, auth derive.Authorizer) error
	MintTo(mint, to core.Address, amount uint64, auth derive.Authorizer) error
	Transfer(from, to core.Address, amount uint64, auth derive.Authorizer) error
	Burn(addr, mint core.Address, amount uint64, auth derive.Authorizer) error
}
