// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

// Well known program identifiers. They are plain labels, not keys.
var (
	StakerProgramID = BytesToAddress([]byte("posvault-staker"))
	TokenProgramID  = BytesToAddress([]byte("posvault-token"))
)
