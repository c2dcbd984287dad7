// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
data-dir: /var/lib/posvault
verbosity: 4
cache-size: 64
metrics: true
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	s := settings{DataDir: "/tmp/flag", Verbosity: 2, CacheSize: 1024}
	cfg.apply(&s, func(name string) bool { return name == dataDirFlag.Name })

	assert.Equal(t, settings{
		DataDir:   "/tmp/flag",
		Verbosity: 4,
		CacheSize: 64,
		Metrics:   true,
	}, s)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(writeFile(t, "unknown.yaml", "datadir: x\n"))
	assert.ErrorContains(t, err, "not found")

	_, err = loadConfig(writeFile(t, "bad.yaml", "verbosity: loud\n"))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	generated, err := keygen(path)
	require.NoError(t, err)

	key, err := loadKey(path)
	require.NoError(t, err)
	assert.Equal(t, keyAddress(generated), keyAddress(key))

	// never overwrite
	_, err = keygen(path)
	assert.Error(t, err)

	_, err = loadKey(writeFile(t, "short", "0xabcd"))
	assert.ErrorContains(t, err, "want 32 bytes")
	_, err = loadKey(writeFile(t, "garbage", "not hex"))
	assert.Error(t, err)
}
