package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthPrefixed(t *testing.T) {
	assert.Equal(t,
		[]byte{0, 4, 'a', 's', 'r', 'i'},
		lengthPrefixed([]byte("asri")))
	assert.Equal(t,
		[]byte{0, 11, 'a', 't', 'o', 'm', 'i', 'c', '_', 's', 'w', 'a', 'p'},
		lengthPrefixed([]byte("atomic_swap")))
	assert.Equal(t, []byte{0, 0}, lengthPrefixed(nil))
}

func TestBuildPrefixIsPrefixFree(t *testing.T) {
	// Plain concatenation of ("ab", "c") and ("a", "bc") is identical.
	// The length-prefixed encoding must keep them apart.
	a := buildPrefix([]byte("ab"), []byte("c"))
	b := buildPrefix([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)

	assert.Equal(t, []byte{0, 2, 'a', 'b', 0, 1, 'c'}, a)
	assert.Equal(t, []byte{0, 1, 'a', 0, 2, 'b', 'c'}, b)
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"simple":         {[]byte{1, 3, 4}, []byte{1, 3, 4}, []byte{1, 3, 5}},
		"trailing 0xff":  {[]byte{1, 3, 0xff}, []byte{1, 3, 0xff}, []byte{1, 4}},
		"only 0xff":      {[]byte{0xff, 0xff}, []byte{0xff, 0xff}, nil},
		"empty unbouded": {nil, nil, nil},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestNestedPrefixOrdering(t *testing.T) {
	// Nesting appends below the parent namespace, so all nested keys
	// stay inside the parent range.
	parent := NewBucket("asri")
	nested := parent.Nest([]byte("recipient"))

	lo, hi := prefixRange(parent.prefix)
	key := nested.DBKey([]byte{1})
	if string(key) < string(lo) || string(key) >= string(hi) {
		t.Fatalf("nested key %X escapes parent range [%X, %X)", key, lo, hi)
	}
}

func TestSegmentTooLongPanics(t *testing.T) {
	huge := make([]byte, 1<<16)
	assert.Panics(t, func() {
		lengthPrefixed(huge)
	})
}
