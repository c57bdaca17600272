package orm

import (
	"testing"

	"github.com/iov-one/swapstore/errors"
	"github.com/iov-one/swapstore/store"
	"github.com/iov-one/swapstore/swaptest/assert"
)

// payload is a minimal Persistent implementation for tests.
type payload struct {
	data []byte
}

func (p *payload) Marshal() ([]byte, error) {
	return p.data, nil
}

func (p *payload) Unmarshal(raw []byte) error {
	p.data = raw
	return nil
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t")
	})
	assert.Panics(t, func() {
		NewBucket("waaaay_too_long_name")
	})
}

func TestBucketSaveLoadDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("mybucket")

	key := []byte("some-key")

	var dest payload
	assert.IsErr(t, errors.ErrNotFound, b.Load(db, key, &dest))

	assert.Nil(t, b.Save(db, key, &payload{data: []byte("content")}))

	has, err := b.Has(db, key)
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	assert.Nil(t, b.Load(db, key, &dest))
	assert.Equal(t, []byte("content"), dest.data)

	// Saving under an existing key silently overwrites.
	assert.Nil(t, b.Save(db, key, &payload{data: []byte("other")}))
	assert.Nil(t, b.Load(db, key, &dest))
	assert.Equal(t, []byte("other"), dest.data)

	assert.Nil(t, b.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.Load(db, key, &dest))

	// Deleting a missing entry is not an error.
	assert.Nil(t, b.Delete(db, key))
}

func TestBucketsDoNotLeakIntoEachOther(t *testing.T) {
	db := store.MemStore()

	// With naive concatenation "swap" + "xa" and "swapx" + "a" would
	// collide on the very same raw key.
	b1 := NewBucket("swap")
	b2 := NewBucket("swapx")

	assert.Nil(t, b1.Save(db, []byte("xa"), &payload{data: []byte("first")}))
	assert.Nil(t, b2.Save(db, []byte("a"), &payload{data: []byte("second")}))

	var dest payload
	assert.Nil(t, b1.Load(db, []byte("xa"), &dest))
	assert.Equal(t, []byte("first"), dest.data)
	assert.Nil(t, b2.Load(db, []byte("a"), &dest))
	assert.Equal(t, []byte("second"), dest.data)

	// Each bucket ranges over its own single entry only.
	models, err := b1.Query(db, nil, 100, Ascending)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte("xa"), models[0].Key)

	models, err = b2.Query(db, nil, 100, Ascending)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte("a"), models[0].Key)
}

func TestNestedBucketsDoNotCollide(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("index")

	// Same flat concatenation, different segment split.
	assert.Nil(t, b.Nest([]byte("ab")).Save(db, []byte("c"), &payload{data: []byte("1")}))
	assert.Nil(t, b.Nest([]byte("a")).Save(db, []byte("bc"), &payload{data: []byte("2")}))

	var dest payload
	assert.Nil(t, b.Nest([]byte("ab")).Load(db, []byte("c"), &dest))
	assert.Equal(t, []byte("1"), dest.data)
	assert.Nil(t, b.Nest([]byte("a")).Load(db, []byte("bc"), &dest))
	assert.Equal(t, []byte("2"), dest.data)

	models, err := b.Nest([]byte("ab")).Query(db, nil, 100, Ascending)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte("c"), models[0].Key)
}

func TestNestDoesNotMutateParent(t *testing.T) {
	b := NewBucket("asri")
	before := string(b.DBKey([]byte("k")))

	// Deriving nested buckets must not touch the parent prefix.
	b.Nest([]byte("alice"))
	b.Nest([]byte("bob"))

	assert.Equal(t, before, string(b.DBKey([]byte("k"))))
}
