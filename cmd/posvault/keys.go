// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
)

func loadKey(path string) (*secp256k1.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key")
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "decode key %s", path)
	}
	if len(b) != secp256k1.PrivKeyBytesLen {
		return nil, errors.Errorf("key %s: want %d bytes, got %d", path, secp256k1.PrivKeyBytesLen, len(b))
	}
	return secp256k1.PrivKeyFromBytes(b), nil
}

func saveKey(path string, key *secp256k1.PrivateKey) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("key %s already exists", path)
	}
	return os.WriteFile(path, []byte(hex.EncodeToString(key.Serialize())+"\n"), 0o600)
}

func keyAddress(key *secp256k1.PrivateKey) core.Address {
	return core.PubKeyToAddress(key.PubKey())
}

func keygen(path string) (*secp256k1.PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	if err := saveKey(path, key); err != nil {
		return nil, err
	}
	return key, nil
}
