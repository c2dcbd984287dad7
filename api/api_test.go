// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/api"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/staker"
	"github.com/posvault/posvault/token"
)

type fakeReader map[core.Address]*accounts.Account

func (f fakeReader) Account(addr core.Address) (*accounts.Account, error) {
	acc, ok := f[addr]
	if !ok {
		return nil, errors.Wrap(accounts.ErrNotFound, addr.String())
	}
	return acc, nil
}

func (f fakeReader) put(t *testing.T, addr, owner core.Address, rec interface{ Encode() ([]byte, error) }) {
	data, err := rec.Encode()
	require.NoError(t, err)
	f[addr] = &accounts.Account{Owner: owner, Data: data}
}

var (
	admin       = core.BytesToAddress([]byte("admin"))
	user        = core.BytesToAddress([]byte("user"))
	depositMint = core.BytesToAddress([]byte("deposit-mint"))
	userDeposit = core.BytesToAddress([]byte("user-deposit"))
)

// newLedger fakes an initialized stake state holding 70 staked units.
func newLedger(t *testing.T) (fakeReader, staker.InitializeAccounts) {
	a, args, err := staker.FindInitializeArgs(core.StakerProgramID, admin, depositMint)
	require.NoError(t, err)

	r := fakeReader{}
	r.put(t, depositMint, core.TokenProgramID, &token.Mint{Decimals: 6, Supply: 100, Authority: admin})
	r.put(t, userDeposit, core.TokenProgramID, &token.Account{Mint: depositMint, Owner: user, Amount: 30})
	r.put(t, a.StakeState, core.StakerProgramID, &staker.StakeState{
		DepositMint:         depositMint,
		ReceiptMint:         a.ReceiptMint,
		StateNonce:          args.StakeStateNonce,
		VaultNonce:          args.VaultNonce,
		MintAuthorityNonce:  args.MintAuthNonce,
		VaultAuthorityNonce: args.VaultAuthNonce,
	})
	r.put(t, a.ReceiptMint, core.TokenProgramID, &token.Mint{Decimals: 6, Supply: 70, Authority: a.MintAuthority})
	r.put(t, a.Vault, core.TokenProgramID, &token.Account{Mint: depositMint, Owner: a.VaultAuthority, Amount: 70})
	return r, a
}

func get(t *testing.T, h http.Handler, path string, out any) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rec.Code == http.StatusOK {
		assert.Equal(t, api.JSONContentType, rec.Header().Get("Content-Type"))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestLoadState(t *testing.T) {
	r, a := newLedger(t)

	state, err := api.LoadState(r, depositMint)
	require.NoError(t, err)
	assert.Equal(t, &api.State{
		Address:        a.StakeState,
		DepositMint:    depositMint,
		ReceiptMint:    a.ReceiptMint,
		Vault:          a.Vault,
		MintAuthority:  a.MintAuthority,
		VaultAuthority: a.VaultAuthority,
		ReceiptSupply:  70,
		VaultBalance:   70,
	}, state)

	_, err = api.LoadState(r, userDeposit)
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	r[a.StakeState].Owner = core.TokenProgramID
	_, err = api.LoadState(r, depositMint)
	assert.ErrorIs(t, err, staker.ErrAccountOwnedByWrongProgram)
}

func TestLoadToken(t *testing.T) {
	r, a := newLedger(t)

	view, err := api.LoadToken(r, a.ReceiptMint)
	require.NoError(t, err)
	assert.Equal(t, &api.Mint{Kind: "mint", Decimals: 6, Supply: 70, Authority: a.MintAuthority}, view)

	view, err = api.LoadToken(r, userDeposit)
	require.NoError(t, err)
	assert.Equal(t, &api.TokenAccount{Kind: "account", Mint: depositMint, Owner: user, Amount: 30}, view)

	_, err = api.LoadToken(r, a.StakeState)
	assert.ErrorIs(t, err, token.ErrNotToken)
}

func TestHandler(t *testing.T) {
	r, a := newLedger(t)
	h := api.New(r, api.Options{})

	var state api.State
	require.Equal(t, http.StatusOK, get(t, h, "/states/"+depositMint.String(), &state))
	assert.Equal(t, a.Vault, state.Vault)
	assert.Equal(t, uint64(70), state.VaultBalance)

	var acc api.TokenAccount
	require.Equal(t, http.StatusOK, get(t, h, "/tokens/"+userDeposit.String(), &acc))
	assert.Equal(t, uint64(30), acc.Amount)

	var raw api.Account
	require.Equal(t, http.StatusOK, get(t, h, "/accounts/"+a.StakeState.String(), &raw))
	assert.Equal(t, core.StakerProgramID, raw.Owner)
	assert.Equal(t, []byte(r[a.StakeState].Data), []byte(raw.Data))

	tests := []struct {
		path string
		code int
	}{
		{"/states/" + userDeposit.String(), http.StatusNotFound},
		{"/states/0x1234", http.StatusBadRequest},
		{"/tokens/" + a.StakeState.String(), http.StatusBadRequest},
		{"/accounts/" + user.String(), http.StatusNotFound},
		{"/metrics", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.code, get(t, h, tt.path, nil))
		})
	}
}

func TestCORS(t *testing.T) {
	r, _ := newLedger(t)
	h := api.New(r, api.Options{AllowedOrigins: "https://Example.org, https://other.org"})

	req := httptest.NewRequest(http.MethodGet, "/tokens/"+userDeposit.String(), nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}
