// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posvault/posvault/kv"
	"github.com/posvault/posvault/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a")
	b := kv.Bucket("b")

	require.NoError(t, a.Writer(db).Put([]byte("k"), []byte("va")))
	require.NoError(t, b.Writer(db).Put([]byte("k"), []byte("vb")))

	val, err := a.Reader(db).Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), val)

	val, err = db.Get([]byte("bk"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), val)

	require.NoError(t, b.Writer(db).Delete([]byte("k")))
	_, err = b.Reader(db).Get([]byte("k"))
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestBucketIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	acc := kv.Bucket("acc")
	batch := db.NewBatch()
	w := acc.Writer(batch)
	for _, k := range []string{"x2", "x1", "y1"} {
		require.NoError(t, w.Put([]byte(k), []byte("v"+k)))
	}
	require.NoError(t, kv.Bucket("other").Writer(batch).Put([]byte("x3"), nil))
	require.NoError(t, batch.Write())

	var keys []string
	require.NoError(t, acc.Reader(db).Iterate([]byte("x"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		assert.Equal(t, "v"+string(key), string(value))
		return true
	}))
	assert.Equal(t, []string{"x1", "x2"}, keys)

	keys = nil
	require.NoError(t, acc.Reader(db).Iterate(nil, func(key, _ []byte) bool {
		keys = append(keys, string(key))
		return len(keys) < 2
	}))
	assert.Equal(t, []string{"x1", "x2"}, keys)
}
