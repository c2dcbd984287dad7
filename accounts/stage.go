// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/overlay"
)

// Stage buffers account changes on top of a Store.
// Nothing reaches the store until Commit.
type Stage struct {
	store *Store
	sm    *overlay.Map[core.Address, *Account]
}

func newStage(store *Store) *Stage {
	return &Stage{
		store: store,
		sm: overlay.New(func(addr core.Address) (*Account, bool, error) {
			acc, err := store.load(addr)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, false, nil
				}
				return nil, false, err
			}
			return acc, true, nil
		}),
	}
}

// Get returns a copy of the account at addr, or ErrNotFound.
func (s *Stage) Get(addr core.Address) (*Account, error) {
	acc, found, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(ErrNotFound, addr.String())
	}
	return acc.Copy(), nil
}

// Exists returns whether an account exists at addr.
func (s *Stage) Exists(addr core.Address) (bool, error) {
	_, found, err := s.sm.Get(addr)
	return found, err
}

// Create adds a new account. It fails with ErrAlreadyExists if addr is taken.
func (s *Stage) Create(addr core.Address, owner core.Address, data []byte) error {
	exists, err := s.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrap(ErrAlreadyExists, addr.String())
	}
	s.sm.Put(addr, &Account{Owner: owner, Data: bytes.Clone(data)})
	return nil
}

// Update replaces the data of an existing account.
func (s *Stage) Update(addr core.Address, data []byte) error {
	acc, found, err := s.sm.Get(addr)
	if err != nil {
		return err
	}
	if !found {
		return errors.Wrap(ErrNotFound, addr.String())
	}
	s.sm.Put(addr, &Account{Owner: acc.Owner, Data: bytes.Clone(data)})
	return nil
}

// Checkpoint returns a revision that RevertTo can roll back to.
func (s *Stage) Checkpoint() int {
	return s.sm.Revision()
}

// RevertTo discards every change made after the checkpoint.
func (s *Stage) RevertTo(revision int) {
	s.sm.RevertTo(revision)
}

// Changes returns the latest value of every account touched.
func (s *Stage) Changes() map[core.Address]*Account {
	changes := make(map[core.Address]*Account, s.sm.Len())
	s.sm.Dirty(func(addr core.Address, acc *Account) bool {
		changes[addr] = acc
		return true
	})
	return changes
}

// Commit writes all changes to the store in one batch.
func (s *Stage) Commit() error {
	changes := s.Changes()
	if len(changes) == 0 {
		return nil
	}
	return s.store.write(changes)
}
