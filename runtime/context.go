// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/derive"
)

// MaxInvokeDepth limits nested cross-program invocations.
const MaxInvokeDepth = 4

// Signer is a transaction signer, usable as an authorizer for its own address.
type Signer struct {
	addr core.Address
}

var _ derive.Authorizer = Signer{}

// Address implements derive.Authorizer.
func (s Signer) Address() core.Address { return s.addr }

// Context is the view of the host a program gets while executing one instruction.
// All account access is restricted to the accounts declared by the instruction.
type Context struct {
	stage   *accounts.Stage
	program core.Address
	caller  core.Address
	depth   int
	signers map[core.Address]bool
	metas   map[core.Address]AccountMeta
}

func newContext(stage *accounts.Stage, ins *Instruction, signers map[core.Address]bool) *Context {
	metas := make(map[core.Address]AccountMeta, len(ins.Accounts))
	for _, meta := range ins.Accounts {
		prev := metas[meta.Address]
		meta.IsSigner = meta.IsSigner || prev.IsSigner
		meta.IsWritable = meta.IsWritable || prev.IsWritable
		metas[meta.Address] = meta
	}
	return &Context{
		stage:   stage,
		program: ins.Program,
		signers: signers,
		metas:   metas,
	}
}

// Program returns the executing program.
func (c *Context) Program() core.Address { return c.program }

// Caller returns the program that invoked this one, zero at top level.
func (c *Context) Caller() core.Address { return c.caller }

// Invoke returns the context for a cross-program call from the executing program.
func (c *Context) Invoke(program core.Address) (*Context, error) {
	if c.depth+1 > MaxInvokeDepth {
		return nil, ErrCallDepthExceeded
	}
	return &Context{
		stage:   c.stage,
		program: program,
		caller:  c.program,
		depth:   c.depth + 1,
		signers: c.signers,
		metas:   c.metas,
	}, nil
}

func (c *Context) meta(addr core.Address) (AccountMeta, error) {
	meta, ok := c.metas[addr]
	if !ok {
		return AccountMeta{}, errors.Wrap(ErrUndeclaredAccount, addr.String())
	}
	return meta, nil
}

func (c *Context) writable(addr core.Address) error {
	meta, err := c.meta(addr)
	if err != nil {
		return err
	}
	if !meta.IsWritable {
		return errors.Wrap(ErrReadonlyAccount, addr.String())
	}
	return nil
}

// Signer returns the authorizer of a signing account.
func (c *Context) Signer(addr core.Address) (derive.Authorizer, error) {
	meta, err := c.meta(addr)
	if err != nil {
		return nil, err
	}
	if !meta.IsSigner || !c.signers[addr] {
		return nil, errors.Wrap(ErrMissingSignature, addr.String())
	}
	return Signer{addr}, nil
}

// Exists returns whether an account exists at addr.
func (c *Context) Exists(addr core.Address) (bool, error) {
	if _, err := c.meta(addr); err != nil {
		return false, err
	}
	return c.stage.Exists(addr)
}

// Account returns a copy of the account at addr.
func (c *Context) Account(addr core.Address) (*accounts.Account, error) {
	if _, err := c.meta(addr); err != nil {
		return nil, err
	}
	return c.stage.Get(addr)
}

// Authorize checks that auth may act as addr: a signature of addr, or a derived
// authority of the executing or the calling program.
func (c *Context) Authorize(addr core.Address, auth derive.Authorizer) error {
	if auth == nil {
		return errors.Wrap(ErrMissingSignature, addr.String())
	}
	if auth.Address() != addr {
		return errors.Wrapf(ErrAuthorityMismatch, "want %v, got %v", addr, auth.Address())
	}
	switch a := auth.(type) {
	case *derive.Authority:
		if a.Program() != c.program && (c.caller.IsZero() || a.Program() != c.caller) {
			return errors.Wrap(ErrInvalidProof, "authority of foreign program")
		}
		if err := a.Verify(); err != nil {
			return errors.Wrap(ErrInvalidProof, err.Error())
		}
		return nil
	case Signer:
		if !c.signers[addr] {
			return errors.Wrap(ErrMissingSignature, addr.String())
		}
		return nil
	default:
		return ErrUnknownAuthorizer
	}
}

// Create creates an account at addr owned by the executing program.
// auth must authorize addr, so nobody can squat on a key or derived address they do not control.
func (c *Context) Create(addr core.Address, data []byte, auth derive.Authorizer) error {
	if err := c.writable(addr); err != nil {
		return err
	}
	if err := c.Authorize(addr, auth); err != nil {
		return err
	}
	return c.stage.Create(addr, c.program, data)
}

// Update replaces the data of an account owned by the executing program.
func (c *Context) Update(addr core.Address, data []byte) error {
	if err := c.writable(addr); err != nil {
		return err
	}
	acc, err := c.stage.Get(addr)
	if err != nil {
		return err
	}
	if acc.Owner != c.program {
		return errors.Wrap(ErrNotOwner, addr.String())
	}
	return c.stage.Update(addr, data)
}
