package swapstore

import (
	"regexp"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swapstore/errors"
)

var (
	// DefaultLogger is used for every block context that did not set one
	// itself.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// BlockInfo carries the block execution context that expiration policies
// are evaluated against, together with a logger scoped to this block.
type BlockInfo struct {
	height  int64
	time    UnixTime
	chainID string
	logger  log.Logger
}

// NewBlockInfo creates a BlockInfo for the block currently being executed.
func NewBlockInfo(height int64, blockTime UnixTime, chainID string, logger log.Logger) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrapf(errors.ErrInput, "invalid chain ID: %q", chainID)
	}
	if height < 0 {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "negative height")
	}
	if err := blockTime.Validate(); err != nil {
		return BlockInfo{}, errors.Wrap(err, "block time")
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return BlockInfo{
		height:  height,
		time:    blockTime,
		chainID: chainID,
		logger:  logger,
	}, nil
}

// Height returns the height of the current block.
func (b BlockInfo) Height() int64 {
	return b.height
}

// Time returns the time declared for the current block.
func (b BlockInfo) Time() UnixTime {
	return b.time
}

// ChainID returns the chain this block belongs to.
func (b BlockInfo) ChainID() string {
	return b.chainID
}

// Logger returns the logger scoped to this block.
func (b BlockInfo) Logger() log.Logger {
	return b.logger
}

// WithLogInfo accumulates more data to go with every log message.
func (b BlockInfo) WithLogInfo(keyvals ...interface{}) BlockInfo {
	b.logger = b.logger.With(keyvals...)
	return b
}
