package orm

import (
	"testing"
	"time"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/store"
	"github.com/iov-one/swapstore/swaptest/assert"
)

func fillBucket(t testing.TB, db swapstore.KVStore, b Bucket, keys ...string) {
	t.Helper()
	for _, k := range keys {
		assert.Nil(t, b.Save(db, []byte(k), &payload{data: []byte("v")}))
	}
}

func queryKeys(t testing.TB, db swapstore.ReadOnlyKVStore, b Bucket, start []byte, limit int, order Order) []string {
	t.Helper()
	models, err := b.Query(db, start, limit, order)
	assert.Nil(t, err)
	keys := make([]string, 0, len(models))
	for _, m := range models {
		keys = append(keys, string(m.Key))
	}
	return keys
}

func TestQueryOrdering(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	fillBucket(t, db, b, "lazy", "assign", "zen")

	assert.Equal(t, []string{"assign", "lazy", "zen"},
		queryKeys(t, db, b, nil, 10, Ascending))
	assert.Equal(t, []string{"zen", "lazy", "assign"},
		queryKeys(t, db, b, nil, 10, Descending))
}

func TestQueryShortKeySortsBeforeItsExtension(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	fillBucket(t, db, b, "ab", "a", "abc")

	// A key that is a byte-prefix of a longer one sorts first.
	assert.Equal(t, []string{"a", "ab", "abc"},
		queryKeys(t, db, b, nil, 10, Ascending))
}

func TestQueryLimit(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	fillBucket(t, db, b, "a", "b", "c", "d")

	assert.Equal(t, []string{"a", "b"}, queryKeys(t, db, b, nil, 2, Ascending))
	assert.Equal(t, []string{"d", "c"}, queryKeys(t, db, b, nil, 2, Descending))
	assert.Equal(t, []string{}, queryKeys(t, db, b, nil, 0, Ascending))
}

func TestQueryLimitLeavesNoBrokenIterator(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	fillBucket(t, db, b, "a", "b", "c", "d", "e", "f")

	// A limit-bounded query closes its iterator before the backing
	// goroutine has streamed all keys. The shutdown must be clean and
	// leave the bucket usable.
	assert.Equal(t, []string{"a", "b"}, queryKeys(t, db, b, nil, 2, Ascending))
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"},
		queryKeys(t, db, b, nil, 10, Ascending))
}

func TestQueryResumeIsExclusive(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	fillBucket(t, db, b, "a", "b", "c", "d")

	assert.Equal(t, []string{"c", "d"},
		queryKeys(t, db, b, []byte("b"), 10, Ascending))
	assert.Equal(t, []string{"b", "a"},
		queryKeys(t, db, b, []byte("c"), 10, Descending))

	// Resuming after the last key yields nothing.
	assert.Equal(t, []string{},
		queryKeys(t, db, b, []byte("d"), 10, Ascending))
}

func TestPaginationComposes(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	all := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	fillBucket(t, db, b, "echo", "bravo", "delta", "alpha", "charlie")

	// Any split point must splice back to the full ordered listing with
	// no duplicates and no gaps.
	for n := 0; n <= len(all); n++ {
		first := queryKeys(t, db, b, nil, n, Ascending)

		var resume []byte
		if len(first) > 0 {
			resume = []byte(first[len(first)-1])
		}
		rest := queryKeys(t, db, b, resume, len(all), Ascending)

		assert.Equal(t, all, append(first, rest...))
	}
}

func TestQueryEmptyBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")

	models, err := b.Query(db, nil, 10, Ascending)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))
}

func TestIterateStaysInsideNamespace(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("swaps")
	neighbor := NewBucket("swapt")

	fillBucket(t, db, b, "a")
	fillBucket(t, db, neighbor, "b")

	assert.Equal(t, []string{"a"}, queryKeys(t, db, b, nil, 10, Ascending))
	assert.Equal(t, []string{"b"}, queryKeys(t, db, neighbor, nil, 10, Ascending))
}
