// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import "golang.org/x/crypto/blake2b"

// Blake2b returns the blake2b-256 digest of the concatenated inputs.
func Blake2b(data ...[]byte) (sum [32]byte) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	h, _ := blake2b.New256(nil)
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(sum[:0])
	return
}
