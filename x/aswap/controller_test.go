package aswap

import (
	"testing"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
	"github.com/iov-one/swapstore/orm"
	"github.com/iov-one/swapstore/store"
	"github.com/iov-one/swapstore/swaptest/assert"
)

func blockAt(t testing.TB, height int64, blockTime swapstore.UnixTime) swapstore.BlockInfo {
	t.Helper()
	block, err := swapstore.NewBlockInfo(height, blockTime, "test-chain-1", nil)
	assert.Nil(t, err)
	return block
}

func TestReleaseWithValidPreimage(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	swap := newSwap(bobAddr)
	assert.Nil(t, bucket.Create(db, []byte("swap-1"), swap))

	balance, err := bucket.Release(db, blockAt(t, 500, 1), []byte("swap-1"), []byte("open sesame"))
	assert.Nil(t, err)
	assert.Equal(t, swap.Balance, balance)

	// The swap and its index entry are gone.
	_, err = bucket.Load(db, []byte("swap-1"))
	assert.IsErr(t, errors.ErrNotFound, err)
	ids, err := bucket.RecipientSwapIDs(db, bobAddr, nil, 10, orm.Ascending)
	assert.Nil(t, err)
	assert.Equal(t, []string{}, ids)
}

func TestReleaseWithInvalidPreimage(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	assert.Nil(t, bucket.Create(db, []byte("swap-1"), newSwap(bobAddr)))

	_, err := bucket.Release(db, blockAt(t, 500, 1), []byte("swap-1"), []byte("abracadabra"))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// The swap stays untouched.
	ok, err := bucket.Has(db, []byte("swap-1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}

func TestReleaseExpiredSwap(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	assert.Nil(t, bucket.Create(db, []byte("swap-1"), newSwap(bobAddr)))

	// Expiration at height 1000 is inclusive.
	_, err := bucket.Release(db, blockAt(t, 1000, 1), []byte("swap-1"), []byte("open sesame"))
	assert.IsErr(t, errors.ErrExpired, err)
}

func TestReleaseMissingSwap(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	_, err := bucket.Release(db, blockAt(t, 1, 1), []byte("no such swap"), []byte("open sesame"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestReturnExpiredSwap(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	swap := newSwap(bobAddr)
	assert.Nil(t, bucket.Create(db, []byte("swap-1"), swap))

	balance, err := bucket.Return(db, blockAt(t, 1000, 1), []byte("swap-1"))
	assert.Nil(t, err)
	assert.Equal(t, swap.Balance, balance)

	_, err = bucket.Load(db, []byte("swap-1"))
	assert.IsErr(t, errors.ErrNotFound, err)
	ids, err := bucket.RecipientSwapIDs(db, bobAddr, nil, 10, orm.Ascending)
	assert.Nil(t, err)
	assert.Equal(t, []string{}, ids)
}

func TestReturnBeforeExpiration(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	assert.Nil(t, bucket.Create(db, []byte("swap-1"), newSwap(bobAddr)))

	_, err := bucket.Return(db, blockAt(t, 999, 1), []byte("swap-1"))
	assert.IsErr(t, errors.ErrState, err)

	ok, err := bucket.Has(db, []byte("swap-1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}

func TestReturnTimeBasedExpiration(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	swap := newSwap(bobAddr)
	swap.Expires = ExpireAtTime(5000)
	assert.Nil(t, bucket.Create(db, []byte("swap-1"), swap))

	_, err := bucket.Return(db, blockAt(t, 1, 4999), []byte("swap-1"))
	assert.IsErr(t, errors.ErrState, err)

	_, err = bucket.Return(db, blockAt(t, 1, 5000), []byte("swap-1"))
	assert.Nil(t, err)
}

func TestReturnNeverExpiringSwap(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()

	swap := newSwap(bobAddr)
	swap.Expires = ExpireNever()
	assert.Nil(t, bucket.Create(db, []byte("swap-1"), swap))

	// A never expiring swap cannot be reclaimed by the source, only
	// released by the recipient.
	_, err := bucket.Return(db, blockAt(t, 1<<40, 1<<40), []byte("swap-1"))
	assert.IsErr(t, errors.ErrState, err)

	_, err = bucket.Release(db, blockAt(t, 1<<40, 1<<40), []byte("swap-1"), []byte("open sesame"))
	assert.Nil(t, err)
}

func TestPreimageHash(t *testing.T) {
	hash := PreimageHash([]byte("open sesame"))
	assert.Equal(t, 32, len(hash))
	assert.Equal(t, hash, PreimageHash([]byte("open sesame")))
}
