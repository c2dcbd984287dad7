// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket namespaces keys under a fixed prefix.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// Reader restricts src to the bucket. Iterated keys come back without the prefix.
func (b Bucket) Reader(src Reader) Reader {
	return bucketReader{b, src}
}

// Writer restricts dst to the bucket.
func (b Bucket) Writer(dst Writer) Writer {
	return bucketWriter{b, dst}
}

type bucketReader struct {
	bucket Bucket
	src    Reader
}

func (r bucketReader) Get(key []byte) ([]byte, error) {
	return r.src.Get(r.bucket.key(key))
}

func (r bucketReader) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	n := len(r.bucket)
	return r.src.Iterate(r.bucket.key(prefix), func(key, value []byte) bool {
		return fn(key[n:], value)
	})
}

type bucketWriter struct {
	bucket Bucket
	dst    Writer
}

func (w bucketWriter) Put(key, value []byte) error {
	return w.dst.Put(w.bucket.key(key), value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.dst.Delete(w.bucket.key(key))
}
