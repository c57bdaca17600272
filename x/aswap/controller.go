package aswap

import (
	"bytes"
	"crypto/sha256"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
)

// PreimageHash computes the sha-256 commitment of a preimage.
func PreimageHash(preimage []byte) []byte {
	h := sha256.Sum256(preimage)
	return h[:]
}

// Release settles the swap in favour of the recipient. The caller must
// present the preimage matching the stored hash, and the swap must not yet
// be expired. On success the swap and its index entry are removed and the
// escrowed balance is returned so that the caller can pay it out.
func (b SwapBucket) Release(db swapstore.KVStore, block swapstore.BlockInfo, id []byte, preimage []byte) (*Balance, error) {
	swap, err := b.Load(db, id)
	if err != nil {
		return nil, err
	}
	if !hashMatches(swap.PreimageHash, preimage) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid preimage")
	}
	if swap.IsExpired(block) {
		return nil, errors.Wrapf(errors.ErrExpired, "swap expired %s", swap.Expires.Describe())
	}
	if err := b.Delete(db, id); err != nil {
		return nil, err
	}
	return swap.Balance, nil
}

// Return settles an expired swap in favour of the source. Until the
// expiration moment is reached the escrow is locked and the call fails. On
// success the swap and its index entry are removed and the escrowed
// balance is returned so that the caller can refund it.
func (b SwapBucket) Return(db swapstore.KVStore, block swapstore.BlockInfo, id []byte) (*Balance, error) {
	swap, err := b.Load(db, id)
	if err != nil {
		return nil, err
	}
	if !swap.IsExpired(block) {
		return nil, errors.Wrapf(errors.ErrState, "swap not yet expired, expires %s", swap.Expires.Describe())
	}
	if err := b.Delete(db, id); err != nil {
		return nil, err
	}
	return swap.Balance, nil
}

func hashMatches(hash, preimage []byte) bool {
	return bytes.Equal(hash, PreimageHash(preimage))
}
