package aswap

import (
	"unicode/utf8"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
	"github.com/iov-one/swapstore/orm"
)

const (
	// swapBucketName is the namespace of the primary swap table.
	swapBucketName = "atomic_swap"
	// recipientIndexName is the namespace of the recipient index.
	recipientIndexName = "asri"
)

// SwapBucket maintains the swap table together with its recipient index.
// All mutations must go through it so that the two stay consistent; the
// index has exactly one entry per stored swap and none for a deleted one.
type SwapBucket struct {
	swaps orm.Bucket
	index orm.Bucket
}

// NewSwapBucket returns a bucket ready to use with any KVStore.
func NewSwapBucket() SwapBucket {
	return SwapBucket{
		swaps: orm.NewBucket(swapBucketName),
		index: orm.NewBucket(recipientIndexName),
	}
}

// Create validates and persists a new swap under the given id and registers
// it in the recipient index. An existing swap under the same id is
// overwritten, together with its index entry.
func (b SwapBucket) Create(db swapstore.KVStore, id []byte, swap *AtomicSwap) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "swap id")
	}
	if err := swap.Validate(); err != nil {
		return errors.Wrap(err, "invalid swap")
	}
	if err := b.swaps.Save(db, id, swap); err != nil {
		return errors.Wrap(err, "cannot save swap")
	}
	// The swap is written but not yet indexed. A failure here leaves the
	// two tables inconsistent, which only the caller can undo by
	// discarding the cache wrap, so escalate it as a database failure.
	if err := b.index.Nest(swap.Recipient).Save(db, id, indexMarker{}); err != nil {
		return errors.Wrapf(errors.ErrDatabase,
			"swap %X stored but indexing failed: %s", id, err)
	}
	return nil
}

// Load reads the swap stored under the given id. It returns ErrNotFound
// when no such swap exists.
func (b SwapBucket) Load(db swapstore.ReadOnlyKVStore, id []byte) (*AtomicSwap, error) {
	var swap AtomicSwap
	if err := b.swaps.Load(db, id, &swap); err != nil {
		return nil, err
	}
	return &swap, nil
}

// Has returns true if a swap is stored under the given id.
func (b SwapBucket) Has(db swapstore.ReadOnlyKVStore, id []byte) (bool, error) {
	return b.swaps.Has(db, id)
}

// Delete removes the swap and its index entry. It returns ErrNotFound when
// no swap is stored under the given id.
func (b SwapBucket) Delete(db swapstore.KVStore, id []byte) error {
	swap, err := b.Load(db, id)
	if err != nil {
		return err
	}
	if err := b.swaps.Delete(db, id); err != nil {
		return errors.Wrap(err, "cannot delete swap")
	}
	if err := b.index.Nest(swap.Recipient).Delete(db, id); err != nil {
		return errors.Wrapf(errors.ErrDatabase,
			"swap %X deleted but index cleanup failed: %s", id, err)
	}
	return nil
}

// AllSwapIDs returns up to limit swap ids in ascending byte order,
// starting strictly after the given id when it is not nil. Ids are
// guaranteed to be valid UTF-8; a stored id that is not decodes to
// ErrState.
func (b SwapBucket) AllSwapIDs(db swapstore.ReadOnlyKVStore, start []byte, limit int) ([]string, error) {
	models, err := b.swaps.Query(db, start, limit, orm.Ascending)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if !utf8.Valid(m.Key) {
			return nil, errors.Wrapf(errors.ErrState,
				"swap id %X is not valid utf-8", m.Key)
		}
		ids = append(ids, string(m.Key))
	}
	return ids, nil
}

// Swaps returns up to limit stored swaps together with their ids, in the
// given byte order, resuming strictly after (ascending) or strictly before
// (descending) the given id when it is not nil.
func (b SwapBucket) Swaps(db swapstore.ReadOnlyKVStore, start []byte, limit int, order orm.Order) ([]SwapRecord, error) {
	models, err := b.swaps.Query(db, start, limit, order)
	if err != nil {
		return nil, err
	}
	records := make([]SwapRecord, 0, len(models))
	for _, m := range models {
		var swap AtomicSwap
		if err := swap.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(errors.ErrState,
				"cannot decode swap %X: %s", m.Key, err)
		}
		records = append(records, SwapRecord{ID: m.Key, Swap: &swap})
	}
	return records, nil
}

// SwapRecord pairs a stored swap with the id it is stored under.
type SwapRecord struct {
	ID   []byte
	Swap *AtomicSwap
}

// RecipientSwapIDs returns up to limit ids of swaps claimable by the given
// recipient, in the given byte order, resuming strictly after (ascending)
// or strictly before (descending) the given id when it is not nil.
func (b SwapBucket) RecipientSwapIDs(db swapstore.ReadOnlyKVStore, recipient []byte, start []byte, limit int, order orm.Order) ([]string, error) {
	if len(recipient) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "recipient")
	}
	models, err := b.index.Nest(recipient).Query(db, start, limit, order)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if !utf8.Valid(m.Key) {
			return nil, errors.Wrapf(errors.ErrState,
				"swap id %X is not valid utf-8", m.Key)
		}
		ids = append(ids, string(m.Key))
	}
	return ids, nil
}

// indexMarker is the value stored under every recipient index entry. The
// index carries all information in its keys, so the value is a fixed eight
// byte zero placeholder.
type indexMarker struct{}

var _ swapstore.Persistent = indexMarker{}

func (indexMarker) Marshal() ([]byte, error) {
	return make([]byte, 8), nil
}

func (indexMarker) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrState, "index marker is %d bytes", len(raw))
	}
	return nil
}
