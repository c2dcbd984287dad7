// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTerminalLogger(&buf, LvlInfo, false).With("pkg", "staker")

	logger.Debug("hidden")
	logger.Info("staked", "amount", 10)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "staked")
	assert.Contains(t, out, "pkg=staker")
	assert.Contains(t, out, "amount=10")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, LvlDebug).Debug("unstaked", "amount", 4)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "unstaked", record["msg"])
	assert.Equal(t, float64(4), record["amount"])
	assert.Equal(t, "debug", record["lvl"])
	assert.Contains(t, record, "t")

	buf.Reset()
	NewJSONLogger(&buf, LvlInfo).Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestSetDefault(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewTerminalLogger(&buf, LvlInfo, false))
	WithContext("pkg", "runtime").Info("executed")
	assert.Contains(t, buf.String(), "pkg=runtime")

	Discard().Error("nothing")
}
