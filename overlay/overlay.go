// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package overlay buffers writes on top of a read-only source with
// checkpoint and revert.
package overlay

// Source reads values that are not overridden.
type Source[K comparable, V any] func(key K) (value V, found bool, err error)

type undo[K comparable, V any] struct {
	key   K
	prev  V
	dirty bool // key was already written before this entry
}

// Map is a write buffer over a Source. Every Put is journaled so that a
// revision can be rolled back. It is not safe for concurrent use.
type Map[K comparable, V any] struct {
	src   Source[K, V]
	dirty map[K]V
	log   []undo[K, V]
}

func New[K comparable, V any](src Source[K, V]) *Map[K, V] {
	return &Map[K, V]{src: src, dirty: make(map[K]V)}
}

// Get returns the buffered value of key, falling back to the source.
func (m *Map[K, V]) Get(key K) (V, bool, error) {
	if v, ok := m.dirty[key]; ok {
		return v, true, nil
	}
	return m.src(key)
}

func (m *Map[K, V]) Put(key K, value V) {
	prev, dirty := m.dirty[key]
	m.log = append(m.log, undo[K, V]{key, prev, dirty})
	m.dirty[key] = value
}

// Revision identifies the current state for RevertTo.
func (m *Map[K, V]) Revision() int {
	return len(m.log)
}

// RevertTo undoes every Put made after rev was taken. Reverting to a
// revision newer than the current one is a no-op.
func (m *Map[K, V]) RevertTo(rev int) {
	for i := len(m.log) - 1; i >= rev && i >= 0; i-- {
		u := m.log[i]
		if u.dirty {
			m.dirty[u.key] = u.prev
		} else {
			delete(m.dirty, u.key)
		}
	}
	if rev < len(m.log) {
		m.log = m.log[:max(rev, 0)]
	}
}

// Dirty calls fn with the latest value of every written key until fn
// returns false. The order is unspecified.
func (m *Map[K, V]) Dirty(fn func(key K, value V) bool) {
	for k, v := range m.dirty {
		if !fn(k, v) {
			return
		}
	}
}

// Len returns the number of written keys.
func (m *Map[K, V]) Len() int {
	return len(m.dirty)
}
