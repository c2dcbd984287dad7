// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"slices"
	"sync"

	"github.com/posvault/posvault/core"
)

// lockTable hands out exclusive per-account locks.
type lockTable struct {
	mu    sync.Mutex
	locks map[core.Address]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[core.Address]*accountLock)}
}

// lock acquires every address in ascending order, so two transactions can never
// wait on each other. The returned func releases them.
func (t *lockTable) lock(addrs []core.Address) func() {
	addrs = slices.Clone(addrs)
	slices.SortFunc(addrs, core.Address.Compare)
	addrs = slices.Compact(addrs)

	held := make([]*accountLock, 0, len(addrs))
	for _, addr := range addrs {
		l := t.acquire(addr)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
			t.release(addrs[i])
		}
	}
}

func (t *lockTable) acquire(addr core.Address) *accountLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[addr]
	if !ok {
		l = &accountLock{}
		t.locks[addr] = l
	}
	l.refs++
	return l
}

func (t *lockTable) release(addr core.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.locks[addr]
	l.refs--
	if l.refs == 0 {
		delete(t.locks, addr)
	}
}

func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
