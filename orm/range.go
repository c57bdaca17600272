package orm

import (
	"bytes"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
)

// Order declares the direction of a range query.
type Order byte

const (
	Ascending Order = iota + 1
	Descending
)

// Iterate walks the keys of this bucket in the given order. When start is
// not nil iteration resumes strictly after (ascending) or strictly before
// (descending) that key, which makes paging through results a matter of
// passing the last seen key back in. Returned keys have the namespace
// prefix stripped.
//
// The iterator is confined to this bucket's namespace; keys of other
// buckets sharing the store can never appear.
func (b Bucket) Iterate(db swapstore.ReadOnlyKVStore, start []byte, order Order) (swapstore.Iterator, error) {
	lo, hi := prefixRange(b.prefix)
	if start != nil {
		switch order {
		case Ascending:
			// The smallest key greater than prefix||start is
			// prefix||start with a zero byte appended.
			lo = append(b.DBKey(start), 0)
		case Descending:
			// The end bound is exclusive already.
			hi = b.DBKey(start)
		}
	}

	var (
		raw swapstore.Iterator
		err error
	)
	switch order {
	case Ascending:
		raw, err = db.Iterator(lo, hi)
	case Descending:
		raw, err = db.ReverseIterator(lo, hi)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "invalid order: %d", order)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot iterate %s", b.name)
	}
	return &prefixIterator{prefix: b.prefix, raw: raw}, nil
}

// Query consumes at most limit entries of this bucket in the given order,
// resuming strictly after start when it is not nil. An empty bucket yields
// an empty result, never an error.
func (b Bucket) Query(db swapstore.ReadOnlyKVStore, start []byte, limit int, order Order) ([]swapstore.Model, error) {
	itr, err := b.Iterate(db, start, order)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var res []swapstore.Model
	for itr.Valid() && len(res) < limit {
		res = append(res, swapstore.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		})
		if err := itr.Next(); err != nil {
			return nil, errors.Wrapf(err, "cannot advance %s iterator", b.name)
		}
	}
	return res, nil
}

// prefixIterator strips the bucket namespace from every key. The range
// bounds guarantee all raw keys carry the prefix; finding one without it
// means the backing store broke its iteration contract.
type prefixIterator struct {
	prefix []byte
	raw    swapstore.Iterator
}

var _ swapstore.Iterator = (*prefixIterator)(nil)

func (i *prefixIterator) Valid() bool { return i.raw.Valid() }

func (i *prefixIterator) Next() error { return i.raw.Next() }

func (i *prefixIterator) Key() []byte {
	key := i.raw.Key()
	if !bytes.HasPrefix(key, i.prefix) {
		panic("iterator produced a key from outside of the bucket namespace")
	}
	return key[len(i.prefix):]
}

func (i *prefixIterator) Value() []byte { return i.raw.Value() }

func (i *prefixIterator) Close() { i.raw.Close() }
