// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime is the host that executes transactions against the account store.
//
// It verifies signatures, serializes transactions touching the same accounts, gives each
// instruction a Context restricted to its declared accounts, and commits the changes of a
// transaction in one batch only when every instruction succeeded.
package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/metrics"
	"github.com/posvault/posvault/reverts"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricTxCount    = metrics.LazyCounterVec("tx_count", []string{"status"})
	metricTxExecTime = metrics.LazyHistogram("tx_exec_time_us", metrics.BucketExecTime)
)

func SetLogger(l log.Logger) {
	logger = l
}

// Program processes instructions addressed to it.
type Program interface {
	Execute(ctx *Context, accounts []AccountMeta, data []byte) error
}

// Runtime executes transactions.
type Runtime struct {
	store    *accounts.Store
	programs map[core.Address]Program
	locks    *lockTable
	executed sync.Map // signing hashes of committed txs
}

// New creates a runtime over the given store.
func New(store *accounts.Store) *Runtime {
	return &Runtime{
		store:    store,
		programs: make(map[core.Address]Program),
		locks:    newLockTable(),
	}
}

// Register installs a program. It must be called before any Execute.
func (r *Runtime) Register(id core.Address, program Program) error {
	if _, ok := r.programs[id]; ok {
		return errors.Wrap(ErrDuplicateProgramID, id.String())
	}
	r.programs[id] = program
	return nil
}

// Account returns the committed account at addr.
func (r *Runtime) Account(addr core.Address) (*accounts.Account, error) {
	return r.store.Get(addr)
}

// Execute runs all instructions of tx. Either every instruction succeeds and all
// changes are committed, or the error is returned and nothing is persisted.
// A tx whose body was already committed is rejected with ErrTxReplayed.
func (r *Runtime) Execute(tx *Tx) (err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
			if reverts.IsRevertErr(err) {
				status = "reverted"
			}
		}
		metricTxCount().AddWithLabel(1, map[string]string{"status": status})
		metricTxExecTime().Observe(time.Since(start).Microseconds())
	}()

	if len(tx.Instructions()) == 0 {
		return ErrNoInstructions
	}
	signers, err := tx.Signers()
	if err != nil {
		return err
	}
	for _, ins := range tx.Instructions() {
		if _, ok := r.programs[ins.Program]; !ok {
			return errors.Wrap(ErrProgramNotFound, ins.Program.String())
		}
		for _, meta := range ins.Accounts {
			if meta.IsSigner && !signers[meta.Address] {
				return errors.Wrap(ErrMissingSignature, meta.Address.String())
			}
		}
	}

	// equal bodies reference equal accounts, so replays serialize here
	unlock := r.locks.lock(tx.accounts())
	defer unlock()

	hash := tx.SigningHash()
	if _, ok := r.executed.Load(hash); ok {
		return errors.Wrapf(ErrTxReplayed, "%x", hash[:8])
	}

	stage := r.store.NewStage()
	for i, ins := range tx.Instructions() {
		if err := r.run(stage, ins, signers); err != nil {
			logger.Debug("instruction failed", "index", i, "program", ins.Program.AbbrevString(), "error", err)
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	if err := stage.Commit(); err != nil {
		return err
	}
	r.executed.Store(hash, struct{}{})
	return nil
}

// run executes one instruction. On failure the stage is rolled back to its
// state before the instruction.
func (r *Runtime) run(stage *accounts.Stage, ins *Instruction, signers map[core.Address]bool) (err error) {
	rev := stage.Checkpoint()
	defer func() {
		if e := recover(); e != nil {
			err = errors.Wrap(ErrProgramPanicked, fmt.Sprint(e))
		}
		if err != nil {
			stage.RevertTo(rev)
		}
	}()
	return r.programs[ins.Program].Execute(newContext(stage, ins, signers), ins.Accounts, ins.Data)
}
