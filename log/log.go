// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the logging facade used across posvault, backed by the go-ethereum slog handlers.
package log

import (
	"io"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a handler.
type Logger = ethlog.Logger

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LvlCrit = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// WithContext returns a logger carrying the given key/value context.
func WithContext(ctx ...any) Logger {
	return ethlog.Root().With(ctx...)
}

// SetDefault replaces the root logger.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

// NewTerminalLogger builds a human readable logger at the given legacy verbosity.
func NewTerminalLogger(w io.Writer, verbosity int, useColor bool) Logger {
	return ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(w, ethlog.FromLegacyLevel(verbosity), useColor))
}

// NewJSONLogger builds a logger emitting one json object per record.
func NewJSONLogger(w io.Writer, verbosity int) Logger {
	return ethlog.NewLogger(ethlog.JSONHandlerWithLevel(w, ethlog.FromLegacyLevel(verbosity)))
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return ethlog.NewLogger(ethlog.DiscardHandler())
}
