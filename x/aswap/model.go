package aswap

import (
	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/swapstore"
	"github.com/iov-one/swapstore/coin"
	"github.com/iov-one/swapstore/errors"
)

const (
	// preimageHashSize is the exact length of the sha-256 commitment.
	preimageHashSize = 32

	// maxAddressSize bounds the canonical address representation.
	maxAddressSize = 64
)

// AtomicSwap is the persistent record of one hash-locked conditional
// transfer.
type AtomicSwap struct {
	// PreimageHash is the sha-256 hash of the preimage the recipient
	// must reveal to claim the escrowed balance.
	PreimageHash []byte `protobuf:"bytes,1,opt,name=preimage_hash,proto3" json:"preimage_hash,omitempty"`
	// Recipient is the canonical address that may claim the swap.
	Recipient []byte `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient,omitempty"`
	// Source is the canonical address that created the swap and may
	// reclaim it after expiration.
	Source []byte `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
	// Expires declares when the source may reclaim the balance.
	Expires *Expiration `protobuf:"bytes,4,opt,name=expires,proto3" json:"expires,omitempty"`
	// Balance is the escrowed value, in native coins or a token.
	Balance *Balance `protobuf:"bytes,5,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ swapstore.Persistent = (*AtomicSwap)(nil)
var _ proto.Message = (*AtomicSwap)(nil)

func (s *AtomicSwap) Reset()         { *s = AtomicSwap{} }
func (s *AtomicSwap) String() string { return proto.CompactTextString(s) }
func (*AtomicSwap) ProtoMessage()    {}

// atomicSwapPB is used for serialization through the gogo runtime without
// recursing into our own Marshal methods.
type atomicSwapPB AtomicSwap

func (s *atomicSwapPB) Reset()         { *s = atomicSwapPB{} }
func (s *atomicSwapPB) String() string { return proto.CompactTextString(s) }
func (*atomicSwapPB) ProtoMessage()    {}

// Marshal implements the Persistent interface. The encoding is
// deterministic, two equal swaps always serialize to the same bytes.
func (s *AtomicSwap) Marshal() ([]byte, error) {
	return proto.Marshal((*atomicSwapPB)(s))
}

// Unmarshal implements the Persistent interface.
func (s *AtomicSwap) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*atomicSwapPB)(s))
}

// Validate ensures the swap is complete enough to be persisted.
func (s *AtomicSwap) Validate() error {
	if len(s.PreimageHash) != preimageHashSize {
		return errors.Wrapf(errors.ErrInput,
			"preimage hash has to be exactly %d bytes", preimageHashSize)
	}
	if err := validateAddress(s.Recipient); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validateAddress(s.Source); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Expires.Validate(); err != nil {
		return errors.Wrap(err, "expires")
	}
	if err := s.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	return nil
}

// IsExpired returns true if the source may reclaim the escrowed balance in
// the given block.
func (s *AtomicSwap) IsExpired(block swapstore.BlockInfo) bool {
	return s.Expires.IsExpired(block)
}

func validateAddress(addr []byte) error {
	if len(addr) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(addr) > maxAddressSize {
		return errors.Wrapf(errors.ErrInput, "address longer than %d bytes", maxAddressSize)
	}
	return nil
}

// Balance is the escrowed value of a swap. It is a sum type: either native
// coins or a token amount must be set, never both. The storage layer does
// not interpret it beyond validation.
type Balance struct {
	Native []*coin.Coin `protobuf:"bytes,1,rep,name=native,proto3" json:"native,omitempty"`
	Token  *TokenAmount `protobuf:"bytes,2,opt,name=token,proto3" json:"token,omitempty"`
}

var _ proto.Message = (*Balance)(nil)

func (b *Balance) Reset()         { *b = Balance{} }
func (b *Balance) String() string { return proto.CompactTextString(b) }
func (*Balance) ProtoMessage()    {}

// NativeBalance wraps coins into a Balance.
func NativeBalance(coins ...*coin.Coin) *Balance {
	return &Balance{Native: coins}
}

// TokenBalance wraps a token amount into a Balance.
func TokenBalance(address []byte, amount int64) *Balance {
	return &Balance{Token: &TokenAmount{Address: address, Amount: amount}}
}

// Validate ensures exactly one arm of the sum is set and holds a positive
// value.
func (b *Balance) Validate() error {
	switch {
	case b == nil:
		return errors.Wrap(errors.ErrEmpty, "balance")
	case len(b.Native) == 0 && b.Token == nil:
		return errors.Wrap(errors.ErrEmpty, "balance")
	case len(b.Native) != 0 && b.Token != nil:
		return errors.Wrap(errors.ErrInput, "native coins and token are exclusive")
	}

	for i, c := range b.Native {
		if c == nil {
			return errors.Wrapf(errors.ErrEmpty, "native coin #%d", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "native coin #%d", i)
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrInput, "native coin #%d is not positive", i)
		}
	}

	if t := b.Token; t != nil {
		if err := validateAddress(t.Address); err != nil {
			return errors.Wrap(err, "token address")
		}
		if t.Amount <= 0 {
			return errors.Wrap(errors.ErrInput, "token amount is not positive")
		}
	}
	return nil
}

// TokenAmount is an amount of a contract-issued token, identified by the
// canonical address of the issuing contract.
type TokenAmount struct {
	Address []byte `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	Amount  int64  `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ proto.Message = (*TokenAmount)(nil)

func (t *TokenAmount) Reset()         { *t = TokenAmount{} }
func (t *TokenAmount) String() string { return proto.CompactTextString(t) }
func (*TokenAmount) ProtoMessage()    {}
