// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/kv"
	"github.com/posvault/posvault/metrics"
)

const bucket = kv.Bucket("a")

var metricCacheAccess = metrics.LazyCounterVec("account_cache_count", []string{"result"})

// Store is the committed account database.
type Store struct {
	db     kv.Store
	reader kv.Reader
	cache  *lru.Cache
}

// NewStore creates an account store over db with a read cache of cacheSize accounts.
func NewStore(db kv.Store, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:     db,
		reader: bucket.Reader(db),
		cache:  cache,
	}, nil
}

// Get returns a copy of the committed account at addr, or ErrNotFound.
func (s *Store) Get(addr core.Address) (*Account, error) {
	acc, err := s.load(addr)
	if err != nil {
		return nil, err
	}
	return acc.Copy(), nil
}

// Exists returns whether an account is committed at addr.
func (s *Store) Exists(addr core.Address) (bool, error) {
	if _, err := s.load(addr); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) load(addr core.Address) (*Account, error) {
	if cached, ok := s.cache.Get(addr); ok {
		metricCacheAccess().AddWithLabel(1, map[string]string{"result": "hit"})
		return cached.(*Account), nil
	}
	metricCacheAccess().AddWithLabel(1, map[string]string{"result": "miss"})

	data, err := s.reader.Get(addr.Bytes())
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, errors.Wrap(ErrNotFound, addr.String())
		}
		return nil, errors.Wrap(err, "get account")
	}
	acc, err := decodeAccount(data)
	if err != nil {
		return nil, err
	}
	s.cache.Add(addr, acc)
	return acc, nil
}

// Range calls fn for every committed account in address order until fn
// returns false. Accounts are decoded from the db, not the cache.
func (s *Store) Range(fn func(addr core.Address, acc *Account) bool) error {
	var decodeErr error
	err := s.reader.Iterate(nil, func(key, value []byte) bool {
		acc, err := decodeAccount(value)
		if err != nil {
			decodeErr = errors.WithMessage(err, core.BytesToAddress(key).String())
			return false
		}
		return fn(core.BytesToAddress(key), acc)
	})
	if err != nil {
		return errors.Wrap(err, "iterate accounts")
	}
	return decodeErr
}

// NewStage creates an uncommitted view of the store.
func (s *Store) NewStage() *Stage {
	return newStage(s)
}

func (s *Store) write(changes map[core.Address]*Account) error {
	batch := s.db.NewBatch()
	putter := bucket.Writer(batch)
	for addr, acc := range changes {
		data, err := encodeAccount(acc)
		if err != nil {
			return errors.Wrap(err, "encode account")
		}
		if err := putter.Put(addr.Bytes(), data); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		// the cache may hold nothing newer than the db
		s.cache.Purge()
		return errors.Wrap(err, "write accounts")
	}
	for addr, acc := range changes {
		s.cache.Add(addr, acc.Copy())
	}
	return nil
}
