// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"encoding/json"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := BytesToAddress([]byte("master"))
	str := addr.String()
	assert.Len(t, str, 66)

	parsed, err := ParseAddress(str)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	parsed, err = ParseAddress(str[2:])
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x" + str[2:])
	assert.EqualError(t, err, "invalid prefix")

	assert.Panics(t, func() { MustParseAddress("zz") })
}

func TestBytesToAddress(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 1
	addr := BytesToAddress(long)
	assert.Equal(t, byte(1), addr[31])

	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte{1}).IsZero())
	assert.Equal(t, -1, BytesToAddress([]byte{1}).Compare(BytesToAddress([]byte{2})))
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("vault"))
	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x12"`), &decoded))
}

func TestBlake2b(t *testing.T) {
	one := Blake2b([]byte("stake-state"), []byte("mint"))
	two := Blake2b([]byte("stake-statemint"))
	assert.Equal(t, one, two)
	assert.NotEqual(t, one, Blake2b([]byte("stake-state")))
}

func TestIsOnCurve(t *testing.T) {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	addr := PubKeyToAddress(key.PubKey())
	assert.True(t, IsOnCurve(addr))

	// x >= field prime is never a valid coordinate
	var max Address
	for i := range max {
		max[i] = 0xff
	}
	assert.False(t, IsOnCurve(max))
}
