// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/posvault/posvault/reverts"

var (
	ErrInsufficientFunds  = reverts.New(1, "insufficient funds")
	ErrInvalidAccountData = reverts.New(2, "invalid token account data")
	ErrMintMismatch       = reverts.New(3, "account not associated with this mint")
	ErrOwnerMismatch      = reverts.New(4, "owner does not match")
	ErrMintAuthority      = reverts.New(5, "mint authority does not match")
	ErrAlreadyInUse       = reverts.New(6, "account already in use")
	ErrNotToken           = reverts.New(7, "account not owned by the token program")
	ErrInvalidAmount      = reverts.New(8, "amount must be positive")
	ErrOverflow           = reverts.New(14, "operation overflowed")
)
