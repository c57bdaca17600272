package aswap

import (
	"fmt"

	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/errors"
)

// Expiration declares the moment from which the source may reclaim an
// escrowed balance. At most one of the two conditions may be set; with
// neither set the swap never expires and can only be released.
type Expiration struct {
	// AtHeight expires the swap once the block height reaches this value.
	AtHeight int64 `protobuf:"varint,1,opt,name=at_height,proto3" json:"at_height,omitempty"`
	// AtTime expires the swap once the block time reaches this value.
	AtTime swapstore.UnixTime `protobuf:"varint,2,opt,name=at_time,proto3" json:"at_time,omitempty"`
}

var _ proto.Message = (*Expiration)(nil)

func (e *Expiration) Reset()         { *e = Expiration{} }
func (e *Expiration) String() string { return proto.CompactTextString(e) }
func (*Expiration) ProtoMessage()    {}

// ExpireAtHeight creates a height based expiration.
func ExpireAtHeight(height int64) *Expiration {
	return &Expiration{AtHeight: height}
}

// ExpireAtTime creates a time based expiration.
func ExpireAtTime(t swapstore.UnixTime) *Expiration {
	return &Expiration{AtTime: t}
}

// ExpireNever creates an expiration that is never reached.
func ExpireNever() *Expiration {
	return &Expiration{}
}

// Validate ensures at most one expiration condition is set and that it is
// positive.
func (e *Expiration) Validate() error {
	switch {
	case e == nil:
		return errors.Wrap(errors.ErrEmpty, "expiration")
	case e.AtHeight != 0 && e.AtTime != 0:
		return errors.Wrap(errors.ErrInput, "height and time expiration are exclusive")
	case e.AtHeight < 0:
		return errors.Wrap(errors.ErrInput, "negative height")
	case e.AtTime < 0:
		return errors.Wrap(errors.ErrInput, "negative time")
	}
	return nil
}

// IsExpired returns true if the expiration moment was reached in the given
// block. The comparison is inclusive, a swap expiring at height N is
// already expired in block N. A never expiring swap is never reached.
func (e *Expiration) IsExpired(block swapstore.BlockInfo) bool {
	switch {
	case e == nil:
		return false
	case e.AtHeight != 0:
		return block.Height() >= e.AtHeight
	case e.AtTime != 0:
		return block.Time() >= e.AtTime
	}
	return false
}

// Describe returns a short human readable description of the condition.
func (e *Expiration) Describe() string {
	switch {
	case e == nil:
		return "never"
	case e.AtHeight != 0:
		return fmt.Sprintf("at height %d", e.AtHeight)
	case e.AtTime != 0:
		return fmt.Sprintf("at time %s", e.AtTime)
	}
	return "never"
}
