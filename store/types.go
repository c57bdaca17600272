package store

import "github.com/iov-one/swapstore"

// Aliases for all storage types of the root package, for shorter names
// everywhere.

type ReadOnlyKVStore = swapstore.ReadOnlyKVStore
type KVStore = swapstore.KVStore
type SetDeleter = swapstore.SetDeleter
type Batch = swapstore.Batch
type Iterator = swapstore.Iterator
type CacheableKVStore = swapstore.CacheableKVStore
type KVCacheWrap = swapstore.KVCacheWrap
type CommitKVStore = swapstore.CommitKVStore
type CommitID = swapstore.CommitID
type Model = swapstore.Model
