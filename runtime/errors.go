// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/pkg/errors"

var (
	ErrNoInstructions     = errors.New("transaction has no instructions")
	ErrProgramNotFound    = errors.New("program not found")
	ErrMissingSignature   = errors.New("missing required signature")
	ErrUndeclaredAccount  = errors.New("account not declared by instruction")
	ErrReadonlyAccount    = errors.New("account is not writable")
	ErrNotOwner           = errors.New("account is not owned by the executing program")
	ErrInvalidProof       = errors.New("invalid derived authority")
	ErrAuthorityMismatch  = errors.New("authority does not match account")
	ErrUnknownAuthorizer  = errors.New("unknown authorizer")
	ErrCallDepthExceeded  = errors.New("cross-program invocation depth exceeded")
	ErrProgramPanicked    = errors.New("program panicked")
	ErrDuplicateProgramID = errors.New("program already registered")
	ErrTxReplayed         = errors.New("transaction already executed")
)
