// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"encoding/binary"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
	"github.com/posvault/posvault/lvldb"
	"github.com/posvault/posvault/reverts"
)

var (
	testProgramID  = core.BytesToAddress([]byte("test-program"))
	otherProgramID = core.BytesToAddress([]byte("other-program"))
	testSeed       = []byte("counter")
	errTestRevert  = reverts.New(1, "test revert")
)

const (
	opCreateSigned = iota
	opCreateDerived
	opIncrement
	opRevert
	opPanic
	opReadUndeclared
	opInvokeIncrement
	opIncrementRevert
)

// testProgram keeps a uint64 counter in account 0.
type testProgram struct {
	id core.Address
}

func (p *testProgram) Execute(ctx *Context, metas []AccountMeta, data []byte) error {
	target := metas[0].Address
	switch data[0] {
	case opCreateSigned:
		auth, err := ctx.Signer(target)
		if err != nil {
			return err
		}
		return ctx.Create(target, make([]byte, 8), auth)
	case opCreateDerived:
		auth, err := derive.NewAuthority(p.id, data[1], testSeed)
		if err != nil {
			return err
		}
		return ctx.Create(target, make([]byte, 8), auth)
	case opIncrement:
		acc, err := ctx.Account(target)
		if err != nil {
			return err
		}
		n := binary.BigEndian.Uint64(acc.Data)
		return ctx.Update(target, binary.BigEndian.AppendUint64(nil, n+1))
	case opRevert:
		return errTestRevert
	case opPanic:
		panic("boom")
	case opReadUndeclared:
		_, err := ctx.Account(core.BytesToAddress([]byte("nowhere")))
		return err
	case opInvokeIncrement:
		child, err := ctx.Invoke(otherProgramID)
		if err != nil {
			return err
		}
		return (&testProgram{otherProgramID}).Execute(child, metas, []byte{opIncrement})
	case opIncrementRevert:
		if err := p.Execute(ctx, metas, []byte{opIncrement}); err != nil {
			return err
		}
		return errTestRevert
	}
	return errors.New("unknown op")
}

func newTestRuntime(t *testing.T) *Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := accounts.NewStore(db, 64)
	require.NoError(t, err)

	rt := New(store)
	require.NoError(t, rt.Register(testProgramID, &testProgram{testProgramID}))
	require.NoError(t, rt.Register(otherProgramID, &testProgram{otherProgramID}))
	assert.ErrorIs(t, rt.Register(testProgramID, &testProgram{}), ErrDuplicateProgramID)
	return rt
}

func newKey(t *testing.T) (*secp256k1.PrivateKey, core.Address) {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return key, core.PubKeyToAddress(key.PubKey())
}

func instruction(program core.Address, op byte, metas ...AccountMeta) *Instruction {
	return &Instruction{Program: program, Accounts: metas, Data: []byte{op}}
}

func counter(t *testing.T, rt *Runtime, addr core.Address) uint64 {
	acc, err := rt.Account(addr)
	require.NoError(t, err)
	return binary.BigEndian.Uint64(acc.Data)
}

func createCounter(t *testing.T, rt *Runtime) core.Address {
	key, addr := newKey(t)
	tx := NewTx(0, instruction(testProgramID, opCreateSigned, AccountMeta{addr, true, true})).WithSignatures(key)
	require.NoError(t, rt.Execute(tx))
	return addr
}

func TestSigners(t *testing.T) {
	key1, addr1 := newKey(t)
	key2, addr2 := newKey(t)

	tx := NewTx(7, instruction(testProgramID, opIncrement))
	signed := tx.WithSignatures(key1).WithSignatures(key2)

	signers, err := signed.Signers()
	require.NoError(t, err)
	assert.Equal(t, map[core.Address]bool{addr1: true, addr2: true}, signers)
	assert.Equal(t, tx.SigningHash(), signed.SigningHash())
	assert.Equal(t, uint64(7), signed.Nonce())

	// the original is left unsigned
	signers, err = tx.Signers()
	require.NoError(t, err)
	assert.Empty(t, signers)

	assert.NotEqual(t, tx.SigningHash(), NewTx(8, instruction(testProgramID, opIncrement)).SigningHash())
}

func TestExecuteRequiresSignatures(t *testing.T) {
	rt := newTestRuntime(t)
	key, addr := newKey(t)
	_, other := newKey(t)

	tx := NewTx(0, instruction(testProgramID, opCreateSigned, AccountMeta{addr, true, true}))
	assert.ErrorIs(t, rt.Execute(tx), ErrMissingSignature)

	// signed by someone else
	require.NoError(t, rt.Execute(tx.WithSignatures(key)))
	tx = NewTx(1, instruction(testProgramID, opCreateSigned, AccountMeta{other, true, true})).WithSignatures(key)
	assert.ErrorIs(t, rt.Execute(tx), ErrMissingSignature)

	// declared as signer but not flagged
	_, third := newKey(t)
	tx = NewTx(2, instruction(testProgramID, opCreateSigned, AccountMeta{third, false, true}))
	assert.ErrorIs(t, rt.Execute(tx), ErrMissingSignature)

	assert.ErrorIs(t, rt.Execute(NewTx(3)), ErrNoInstructions)
	assert.ErrorIs(t, rt.Execute(NewTx(3, instruction(core.Address{}, opIncrement))), ErrProgramNotFound)
}

func TestExecuteAtomic(t *testing.T) {
	rt := newTestRuntime(t)
	addr := createCounter(t, rt)

	tx := NewTx(1,
		instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}),
		instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}),
	)
	require.NoError(t, rt.Execute(tx))
	assert.Equal(t, uint64(2), counter(t, rt, addr))

	// the failing second instruction discards the first one's write
	tx = NewTx(2,
		instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}),
		instruction(testProgramID, opRevert, AccountMeta{addr, false, true}),
	)
	err := rt.Execute(tx)
	assert.ErrorIs(t, err, errTestRevert)
	assert.True(t, reverts.IsRevertErr(err))
	assert.Equal(t, uint64(2), counter(t, rt, addr))

	tx = NewTx(3,
		instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}),
		instruction(testProgramID, opPanic, AccountMeta{addr, false, true}),
	)
	assert.ErrorIs(t, rt.Execute(tx), ErrProgramPanicked)
	assert.Equal(t, uint64(2), counter(t, rt, addr))
}

func TestFailedInstructionRollsBackStage(t *testing.T) {
	rt := newTestRuntime(t)
	addr := createCounter(t, rt)
	signers := map[core.Address]bool{}
	stageCounter := func(stage *accounts.Stage) uint64 {
		acc, err := stage.Get(addr)
		require.NoError(t, err)
		return binary.BigEndian.Uint64(acc.Data)
	}

	stage := rt.store.NewStage()
	require.NoError(t, rt.run(stage, instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}), signers))
	assert.Equal(t, uint64(1), stageCounter(stage))

	// the write made before the revert is undone, the earlier one survives
	err := rt.run(stage, instruction(testProgramID, opIncrementRevert, AccountMeta{addr, false, true}), signers)
	assert.ErrorIs(t, err, errTestRevert)
	assert.Equal(t, uint64(1), stageCounter(stage))

	require.NoError(t, stage.Commit())
	assert.Equal(t, uint64(1), counter(t, rt, addr))
}

func TestExecuteRejectsReplay(t *testing.T) {
	rt := newTestRuntime(t)
	addr := createCounter(t, rt)

	tx := NewTx(1, instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}))
	require.NoError(t, rt.Execute(tx))
	assert.ErrorIs(t, rt.Execute(tx), ErrTxReplayed)
	assert.Equal(t, uint64(1), counter(t, rt, addr))

	// extra signatures do not change the signing hash
	key, _ := newKey(t)
	assert.ErrorIs(t, rt.Execute(tx.WithSignatures(key)), ErrTxReplayed)

	// a failed tx may be retried
	failing := NewTx(2, instruction(testProgramID, opRevert, AccountMeta{addr, false, true}))
	assert.ErrorIs(t, rt.Execute(failing), errTestRevert)
	assert.ErrorIs(t, rt.Execute(failing), errTestRevert)

	require.NoError(t, rt.Execute(NewTx(3, instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}))))
	assert.Equal(t, uint64(2), counter(t, rt, addr))
}

func TestContextAccessRules(t *testing.T) {
	rt := newTestRuntime(t)
	addr := createCounter(t, rt)

	err := rt.Execute(NewTx(1, instruction(testProgramID, opIncrement, AccountMeta{addr, false, false})))
	assert.ErrorIs(t, err, ErrReadonlyAccount)

	err = rt.Execute(NewTx(2, instruction(testProgramID, opReadUndeclared, AccountMeta{addr, false, false})))
	assert.ErrorIs(t, err, ErrUndeclaredAccount)

	// owned by testProgram, other program may not write
	err = rt.Execute(NewTx(3, instruction(otherProgramID, opIncrement, AccountMeta{addr, false, true})))
	assert.ErrorIs(t, err, ErrNotOwner)

	// nor when invoked by the owner
	err = rt.Execute(NewTx(4, instruction(testProgramID, opInvokeIncrement, AccountMeta{addr, false, true})))
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, uint64(0), counter(t, rt, addr))
}

func TestCreateDerived(t *testing.T) {
	rt := newTestRuntime(t)

	addr, nonce, err := derive.FindAddress(testProgramID, testSeed)
	require.NoError(t, err)

	ins := &Instruction{
		Program:  testProgramID,
		Accounts: []AccountMeta{{addr, false, true}},
		Data:     []byte{opCreateDerived, nonce},
	}
	require.NoError(t, rt.Execute(NewTx(0, ins)))

	acc, err := rt.Account(addr)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, acc.Owner)

	// second creation fails, the address is taken
	assert.ErrorIs(t, rt.Execute(NewTx(1, ins)), accounts.ErrAlreadyExists)

	// the same seeds of another program derive another address
	_, otherNonce, err := derive.FindAddress(otherProgramID, testSeed)
	require.NoError(t, err)
	ins = &Instruction{
		Program:  otherProgramID,
		Accounts: []AccountMeta{{addr, false, true}},
		Data:     []byte{opCreateDerived, otherNonce},
	}
	assert.ErrorIs(t, rt.Execute(NewTx(2, ins)), ErrAuthorityMismatch)
}

func TestAuthorize(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	store, err := accounts.NewStore(db, 0)
	require.NoError(t, err)

	_, user := newKey(t)
	_, nonce, err := derive.FindAddress(testProgramID, testSeed)
	require.NoError(t, err)
	proof, err := derive.NewAuthority(testProgramID, nonce, testSeed)
	require.NoError(t, err)

	ctx := newContext(store.NewStage(), &Instruction{Program: testProgramID}, map[core.Address]bool{user: true})
	assert.NoError(t, ctx.Authorize(user, Signer{user}))
	assert.NoError(t, ctx.Authorize(proof.Address(), proof))
	assert.ErrorIs(t, ctx.Authorize(user, nil), ErrMissingSignature)
	assert.ErrorIs(t, ctx.Authorize(user, proof), ErrAuthorityMismatch)
	assert.ErrorIs(t, ctx.Authorize(proof.Address(), Signer{proof.Address()}), ErrMissingSignature)

	// a callee accepts the caller's derived authorities
	child, err := ctx.Invoke(otherProgramID)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, child.Caller())
	assert.NoError(t, child.Authorize(proof.Address(), proof))

	// but an unrelated program does not
	foreign := newContext(store.NewStage(), &Instruction{Program: otherProgramID}, nil)
	assert.ErrorIs(t, foreign.Authorize(proof.Address(), proof), ErrInvalidProof)

	for range MaxInvokeDepth - 1 {
		child, err = child.Invoke(otherProgramID)
		require.NoError(t, err)
	}
	_, err = child.Invoke(otherProgramID)
	assert.ErrorIs(t, err, ErrCallDepthExceeded)
}

func TestConcurrentExecuteSerializes(t *testing.T) {
	rt := newTestRuntime(t)
	addr := createCounter(t, rt)

	const workers, rounds = 8, 25
	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for i := range rounds {
				tx := NewTx(uint64(w*rounds+i), instruction(testProgramID, opIncrement, AccountMeta{addr, false, true}))
				if err := rt.Execute(tx); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, uint64(workers*rounds), counter(t, rt, addr))
	assert.Zero(t, rt.locks.size())
}
