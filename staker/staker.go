// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker locks a deposit token in a vault and mints a receipt token 1:1 against it.
//
// One StakeState binds a deposit mint to its receipt mint and records the nonces of every
// derived address the program uses. Two derived authorities sign for the program: the mint
// authority issues receipts on Stake, the vault authority releases deposits on Unstake.
// Every handler validates all of its accounts before it issues the first ledger call.
package staker

import (
	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/metrics"
)

var (
	logger = log.WithContext("pkg", "staker")

	metricInstructions = metrics.LazyCounterVec("instructions_count", []string{"name", "status"})
	metricStaked       = metrics.LazyCounter("staked_amount")
	metricUnstaked     = metrics.LazyCounter("unstaked_amount")
)

func SetLogger(l log.Logger) {
	logger = l
}

// Host is the account access of the executing instruction. *runtime.Context implements it.
type Host interface {
	Program() core.Address
	Exists(addr core.Address) (bool, error)
	Account(addr core.Address) (*accounts.Account, error)
	Create(addr core.Address, data []byte, auth derive.Authorizer) error
	Signer(addr core.Address) (derive.Authorizer, error)
}

func countInstruction(name string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	metricInstructions().AddWithLabel(1, map[string]string{"name": name, "status": status})
}
