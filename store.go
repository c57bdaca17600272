package swapstore

// This file defines the public interfaces for interacting with stores.
//
// KVStore and Iterator are the basic objects used by all storage code.

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing. Writes may be buffered
// until Write is called on the enclosing batch.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch groups writes so they can be applied to the backing store as one
// unit. There is no guarantee of atomicity beyond what the backing store
// provides.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator allows sequential access to a set of items within a range of
// keys. These may all be preloaded, or loaded on demand.
//
//   var itr Iterator = ...
//   defer itr.Close()
//
//   for ; itr.Valid(); itr.Next() {
//     k, v := itr.Key(), itr.Value()
//     ...
//   }
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key in the database,
	// as defined by order of iteration.
	//
	// If Valid returns false, this method will panic.
	Next() error

	// Key returns the key of the cursor.
	// If Valid returns false, this method will panic.
	// CONTRACT: key is readonly and valid until the next call to Next.
	Key() (key []byte)

	// Value returns the value of the cursor.
	// If Valid returns false, this method will panic.
	// CONTRACT: value is readonly and valid until the next call to Next.
	Value() (value []byte)

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap maintains a scratch-pad of uncommitted writes that is
// consulted by all reads. At the end, call Write to flush them to the
// parent store, or Discard to drop them.
//
// This is the savepoint/rollback primitive the swap state layer relies on:
// all writes of one logical operation happen against a cache wrap and are
// committed or discarded as a whole.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that can persist a sequence of versions to disk
// and load them back on start up.
type CommitKVStore interface {
	KVStore

	// CacheWrap returns a scratch-pad to collect the writes of one
	// logical operation before committing them.
	CacheWrap() KVCacheWrap

	// Commit writes the next version to disk and returns its info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was
	// a crash during the last commit, it is guaranteed to return a stable
	// state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() CommitID
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a raw key-value pair as stored in, or read from, a KVStore.
type Model struct {
	Key   []byte
	Value []byte
}

// Persistent is implemented by anything that can be stored under a key in a
// KVStore. The encoding must be deterministic and lossless, as stored bytes
// are compared and reloaded across versions.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
