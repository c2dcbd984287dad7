// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the coded errors that abort an instruction.
// A revert is final: the whole transaction is discarded and never retried by the host.
package reverts

import (
	"errors"
	"fmt"
)

// Error is a revert with a code unique within its program.
// Values are compared by identity, so declare each one once.
type Error struct {
	code    uint32
	message string
}

func New(code uint32, message string) *Error {
	return &Error{code: code, message: message}
}

func (e *Error) Error() string { return e.message }

func (e *Error) Code() uint32 { return e.code }

// String includes the code, used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("%s (%d)", e.message, e.code)
}

// As returns the first revert in err's chain.
func As(err error) (*Error, bool) {
	var re *Error
	ok := errors.As(err, &re)
	return re, ok
}

// IsRevertErr reports whether err wraps a revert.
func IsRevertErr(err error) bool {
	_, ok := As(err)
	return ok
}

// Code extracts the code of the first revert in err's chain.
func Code(err error) (uint32, bool) {
	if re, ok := As(err); ok {
		return re.code, true
	}
	return 0, false
}
