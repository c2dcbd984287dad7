// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package derive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posvault/posvault/core"
)

var (
	program = core.StakerProgramID
	mint    = core.BytesToAddress([]byte("deposit-mint"))
)

func TestFindAddressIsDeterministic(t *testing.T) {
	addr, nonce, err := FindAddress(program, SeedStakeState, mint.Bytes())
	require.NoError(t, err)
	assert.False(t, core.IsOnCurve(addr))

	for range 5 {
		again, againNonce, err := FindAddress(program, SeedStakeState, mint.Bytes())
		require.NoError(t, err)
		assert.Equal(t, addr, again)
		assert.Equal(t, nonce, againNonce)
	}

	created, err := StakeStateAddress(program, mint, nonce)
	require.NoError(t, err)
	assert.Equal(t, addr, created)
}

func TestFindAddressPicksHighestValidNonce(t *testing.T) {
	_, nonce, err := FindAddress(program, SeedMintAuthority)
	require.NoError(t, err)

	for n := 255; n > int(nonce); n-- {
		_, err := CreateAddress(program, uint8(n), SeedMintAuthority)
		assert.ErrorIs(t, err, ErrOnCurve, "nonce %d", n)
	}
}

func TestCreateAddressDependsOnEveryInput(t *testing.T) {
	_, nonce, err := FindAddress(program, SeedVault, mint.Bytes())
	require.NoError(t, err)
	base, err := CreateAddress(program, nonce, SeedVault, mint.Bytes())
	require.NoError(t, err)

	other := core.BytesToAddress([]byte("other-mint"))
	if addr, err := CreateAddress(program, nonce, SeedVault, other.Bytes()); err == nil {
		assert.NotEqual(t, base, addr)
	}
	if addr, err := CreateAddress(core.TokenProgramID, nonce, SeedVault, mint.Bytes()); err == nil {
		assert.NotEqual(t, base, addr)
	}
	if addr, err := CreateAddress(program, nonce, SeedPosMint, mint.Bytes()); err == nil {
		assert.NotEqual(t, base, addr)
	}
}

func TestCreateAddressLimits(t *testing.T) {
	_, err := CreateAddress(program, 1, bytes.Repeat([]byte{1}, MaxSeedLen+1))
	assert.ErrorIs(t, err, ErrMaxSeedLen)

	seeds := make([][]byte, MaxSeeds+1)
	_, err = CreateAddress(program, 1, seeds...)
	assert.ErrorIs(t, err, ErrMaxSeeds)

	_, _, err = FindAddress(program, seeds...)
	assert.ErrorIs(t, err, ErrMaxSeeds)
}

func TestAuthority(t *testing.T) {
	_, nonce, err := FindAddress(program, SeedVaultAuthority)
	require.NoError(t, err)

	auth, err := VaultAuthority(program, nonce)
	require.NoError(t, err)
	require.NoError(t, auth.Verify())

	addr, err := VaultAuthorityAddress(program, nonce)
	require.NoError(t, err)
	assert.Equal(t, addr, auth.Address())
	assert.Equal(t, program, auth.Program())
	assert.Equal(t, nonce, auth.Nonce())

	seeds := auth.Seeds()
	seeds[0][0] = 'x'
	assert.Equal(t, SeedVaultAuthority, auth.Seeds()[0])
	require.NoError(t, auth.Verify())

	assert.ErrorIs(t, (*Authority)(nil).Verify(), ErrProofMismatch)

	forged := *auth
	forged.nonce--
	assert.ErrorIs(t, forged.Verify(), ErrProofMismatch)
}

func TestVerifyReportsFailedDerivation(t *testing.T) {
	// the zero proof derives a point on the curve
	_, err := CreateAddress(core.Address{}, 0)
	require.ErrorIs(t, err, ErrOnCurve)

	err = (&Authority{}).Verify()
	assert.ErrorIs(t, err, ErrProofMismatch)
	assert.NotErrorIs(t, err, ErrOnCurve)
	assert.ErrorContains(t, err, ErrOnCurve.Error())
}

func TestAuthorityRejectsOnCurveNonce(t *testing.T) {
	_, nonce, err := FindAddress(program, SeedMintAuthority)
	require.NoError(t, err)
	if nonce == 255 {
		t.Skip("first nonce is already valid")
	}
	_, err = MintAuthority(program, 255)
	assert.ErrorIs(t, err, ErrOnCurve)
}
