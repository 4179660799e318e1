package state

import (
	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// RetrieveHeight returns the current block number. The second return is
// false when no blocks have been appended yet.
func (s *State) RetrieveHeight() (uint64, bool) {
	return s.ledger.CurrentBlockNumber()
}

// RetrieveTotalBlocks returns the number of appended blocks.
func (s *State) RetrieveTotalBlocks() uint64 {
	return s.ledger.TotalBlocks()
}

// RetrieveLatestBlock returns the most recently appended block.
func (s *State) RetrieveLatestBlock() (block.Block, bool) {
	blk, exists := s.ledger.Latest()
	if !exists {
		return block.Block{}, false
	}

	blk.SetStatus(block.StatusAcceptedOnL2)
	return blk, true
}

// RetrieveBlockByHash returns the block with the specified hash.
func (s *State) RetrieveBlockByHash(hash felt.Felt) (block.Block, bool) {
	blk, exists := s.ledger.ByHash(hash)
	if !exists {
		return block.Block{}, false
	}

	blk.SetStatus(block.StatusAcceptedOnL2)
	return blk, true
}

// RetrieveBlockByNumber returns the block at the specified position.
func (s *State) RetrieveBlockByNumber(num uint64) (block.Block, bool) {
	blk, exists := s.ledger.ByNumber(num)
	if !exists {
		return block.Block{}, false
	}

	blk.SetStatus(block.StatusAcceptedOnL2)
	return blk, true
}

// RetrievePendingBlock returns the block currently under construction. The
// pending block is volatile and is replaced on the next successful append.
func (s *State) RetrievePendingBlock() (block.Block, bool) {
	blk, exists := s.ledger.Pending()
	if !exists {
		return block.Block{}, false
	}

	blk.SetStatus(block.StatusPending)
	return blk, true
}

// RetrieveTransaction returns the transaction at the specified position
// within the specified block.
func (s *State) RetrieveTransaction(num uint64, index int) (transaction.Transaction, bool) {
	return s.ledger.TransactionByBlockNumberAndIndex(num, index)
}

// RetrieveStateUpdate returns the state update recorded for the specified
// block number.
func (s *State) RetrieveStateUpdate(num uint64) (statediff.StateUpdate, bool) {
	return s.ledger.StateUpdate(num)
}
