/*
Package orm breaks the state space into prefixed sections called Buckets.

Each bucket owns one logical table inside a shared KVStore. Its namespace
prefix is built from length-prefixed segments, so no two buckets can ever
observe each other's keys, and a bucket can be nested below dynamic
segments (for example a per-recipient section of a secondary index).

Buckets read and write values through the Persistent interface and answer
ordered, resumable, limit-bounded range queries over their own namespace
only.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// Bucket is a generic holder of all data stored below one namespace
// prefix.
//
// This is a building block that should be embedded in a type-safe wrapper
// to ensure all stored data is of the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket with the namespace derived from the given
// name. The name must be a short lowercase literal, it panics otherwise.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: buildPrefix([]byte(name)),
	}
}

// Nest returns a bucket scoped to the sub-namespace below the given
// dynamic segments. Each segment is length-prefixed, so segments of
// different lengths can never collide with each other or with the record
// keys that follow.
func (b Bucket) Nest(segments ...[]byte) Bucket {
	prefix := make([]byte, len(b.prefix), len(b.prefix)+len(buildPrefix(segments...)))
	copy(prefix, b.prefix)
	return Bucket{
		name:   b.name,
		prefix: append(prefix, buildPrefix(segments...)...),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the full key as stored in the db, including the namespace
// prefix. It copies into a new array rather than using append, so that
// consecutive calls can never share (and overwrite) a backing array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Save serializes the value and writes it under the given key. An existing
// entry is silently overwritten; uniqueness, if required, is the caller's
// responsibility.
func (b Bucket) Save(db swapstore.KVStore, key []byte, value swapstore.Persistent) error {
	raw, err := value.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", value)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrapf(err, "cannot store %s %X", b.name, key)
	}
	return nil
}

// Load reads the value stored under the given key into dest. It returns
// ErrNotFound when no entry exists and ErrState when the stored bytes
// cannot be decoded.
func (b Bucket) Load(db swapstore.ReadOnlyKVStore, key []byte, dest swapstore.Persistent) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrapf(err, "cannot read %s %X", b.name, key)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot decode %s %X: %s", b.name, key, err)
	}
	return nil
}

// Has returns true if an entry exists under the given key.
func (b Bucket) Has(db swapstore.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Delete removes the entry at the given key. Deleting a missing entry is
// not an error; existence checks belong to the caller.
func (b Bucket) Delete(db swapstore.KVStore, key []byte) error {
	return errors.Wrapf(db.Delete(b.DBKey(key)), "cannot delete %s %X", b.name, key)
}
