// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Database on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/posvault/posvault/kv"
)

var _ kv.Database = (*DB)(nil)

// Options tunes a database. Values below the minimum are raised to it.
type Options struct {
	CacheMiB  int // block cache plus write buffer, min 16
	OpenFiles int // open file handles, min 16
	// NoSync skips fsync on batch writes. Only for throwaway data.
	NoSync bool
}

// DB is a leveldb backed kv.Database.
type DB struct {
	db    *leveldb.DB
	stg   storage.Storage // not closed by leveldb, it holds the file lock
	write opt.WriteOptions
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*DB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %s", path)
	}
	return open(stg, opts)
}

// NewMem creates a database held in memory.
func NewMem() (*DB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*DB, error) {
	opts.CacheMiB = max(opts.CacheMiB, 16)
	opts.OpenFiles = max(opts.OpenFiles, 16)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFiles,
		BlockCacheCapacity:     opts.CacheMiB / 2 * opt.MiB,
		WriteBuffer:            opts.CacheMiB / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &DB{db: db, stg: stg, write: opt.WriteOptions{Sync: !opts.NoSync}}, nil
}

// Get returns kv.ErrNotFound for absent keys.
func (d *DB) Get(key []byte) ([]byte, error) {
	val, err := d.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, kv.ErrNotFound
	}
	return val, err
}

func (d *DB) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	it := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (d *DB) Put(key, value []byte) error {
	return d.db.Put(key, value, &d.write)
}

func (d *DB) Delete(key []byte) error {
	return d.db.Delete(key, &d.write)
}

// NewBatch returns a batch applied in one leveldb write.
func (d *DB) NewBatch() kv.Batch {
	return &batch{d: d}
}

// Close releases the database. Later calls fail.
func (d *DB) Close() error {
	err := d.db.Close()
	if serr := d.stg.Close(); err == nil {
		err = serr
	}
	return err
}

type batch struct {
	d  *DB
	lb leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.lb.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.lb.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.lb.Len() }

func (b *batch) Write() error {
	return b.d.db.Write(&b.lb, &b.d.write)
}
