package aswap

import (
	"testing"

	"github.com/iov-one/swapstore/errors"
	"github.com/iov-one/swapstore/swaptest/assert"
)

func TestExpirationValidate(t *testing.T) {
	cases := map[string]struct {
		exp     *Expiration
		wantErr *errors.Error
	}{
		"height based":    {exp: ExpireAtHeight(100)},
		"time based":      {exp: ExpireAtTime(100)},
		"never":           {exp: ExpireNever()},
		"nil":             {wantErr: errors.ErrEmpty},
		"both set":        {exp: &Expiration{AtHeight: 1, AtTime: 1}, wantErr: errors.ErrInput},
		"negative height": {exp: ExpireAtHeight(-1), wantErr: errors.ErrInput},
		"negative time":   {exp: ExpireAtTime(-1), wantErr: errors.ErrInput},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.exp.Validate())
		})
	}
}

func TestExpirationIsInclusive(t *testing.T) {
	byHeight := ExpireAtHeight(100)
	assert.Equal(t, false, byHeight.IsExpired(blockAt(t, 99, 1)))
	assert.Equal(t, true, byHeight.IsExpired(blockAt(t, 100, 1)))
	assert.Equal(t, true, byHeight.IsExpired(blockAt(t, 101, 1)))

	byTime := ExpireAtTime(100)
	assert.Equal(t, false, byTime.IsExpired(blockAt(t, 1, 99)))
	assert.Equal(t, true, byTime.IsExpired(blockAt(t, 1, 100)))
	assert.Equal(t, true, byTime.IsExpired(blockAt(t, 1, 101)))
}

func TestNeverExpires(t *testing.T) {
	never := ExpireNever()
	assert.Equal(t, false, never.IsExpired(blockAt(t, 1<<40, 1<<40)))
}

func TestExpirationDescribe(t *testing.T) {
	assert.Equal(t, "at height 42", ExpireAtHeight(42).Describe())
	assert.Equal(t, "never", ExpireNever().Describe())
	var e *Expiration
	assert.Equal(t, "never", e.Describe())
}
