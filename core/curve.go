// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// IsOnCurve reports whether addr is the x coordinate of a secp256k1 point, i.e. whether
// a private key for it can exist.
func IsOnCurve(addr Address) bool {
	var compressed [secp256k1.PubKeyBytesLenCompressed]byte
	compressed[0] = secp256k1.PubKeyFormatCompressedEven
	copy(compressed[1:], addr[:])
	_, err := secp256k1.ParsePubKey(compressed[:])
	return err == nil
}

// PubKeyToAddress returns the address of a public key: its x coordinate.
func PubKeyToAddress(pub *secp256k1.PublicKey) Address {
	return BytesToAddress(pub.SerializeCompressed()[1:])
}
