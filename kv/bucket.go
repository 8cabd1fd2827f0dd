// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides a logical key space on a shared store by key prefixing.
type Bucket string

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.b.makeKey(key))
}

func (g *bucketGetter) Has(key []byte) (bool, error) {
	return g.src.Has(g.b.makeKey(key))
}

func (g *bucketGetter) IsNotFound(err error) bool { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) Put(key, val []byte) error {
	return p.src.Put(p.b.makeKey(key), val)
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.src.Delete(p.b.makeKey(key))
}

type bucketIterator struct {
	b Bucket
	Iterator
}

// Key returns the key with the bucket prefix stripped.
func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[len(i.b):]
}

func (b Bucket) makeKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewIterator iterates the whole bucket, yielding keys with the bucket
// prefix stripped.
func (b Bucket) NewIterator(src Store) Iterator {
	r := util.BytesPrefix([]byte(b))
	return &bucketIterator{b, src.Iterate(Range{Start: r.Start, Limit: r.Limit})}
}
