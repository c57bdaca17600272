package orm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Namespace keys are built from length-prefixed segments. Plain
// concatenation of variable length byte strings is not prefix free, so two
// different segment sequences could produce the same flat key and range
// queries would leak across logical tables. Prefixing every segment with
// its 2-byte big endian length makes the encoding collision free. Only the
// final record key is appended raw, as it is the one part that range
// queries must order by.

// lengthPrefixed encodes a single namespace segment.
func lengthPrefixed(segment []byte) []byte {
	if len(segment) > math.MaxUint16 {
		panic(fmt.Sprintf("namespace segment too long: %d bytes", len(segment)))
	}
	out := make([]byte, 2+len(segment))
	binary.BigEndian.PutUint16(out, uint16(len(segment)))
	copy(out[2:], segment)
	return out
}

// buildPrefix encodes a sequence of namespace segments into one composite
// key prefix.
func buildPrefix(segments ...[]byte) []byte {
	size := 0
	for _, s := range segments {
		size += 2 + len(s)
	}
	out := make([]byte, 0, size)
	for _, s := range segments {
		out = append(out, lengthPrefixed(s)...)
	}
	return out
}

// prefixRange returns the smallest interval [start, end) that contains all
// keys beginning with the given prefix. A nil end means unbounded, which
// happens only when the prefix consists entirely of 0xff bytes.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	// The end of the range is the prefix with the last non-0xff byte
	// incremented and everything after it dropped.
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
