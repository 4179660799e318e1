package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
	"github.com/seqlabs/starknode/foundation/felt"
)

// ErrNoTransactions is returned from ProduceBlock when there is nothing in
// the mempool and an empty block was not asked for.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ProduceBlock runs one full production cycle: stage a pending block, drain
// the mempool into it, execute, commit the finished block and its state
// update to the ledger, and clear the pending slot. Cycles are serialized;
// the node has a single authoritative producer.
func (s *State) ProduceBlock(force bool) (block.Block, error) {
	s.produceMu.Lock()
	defer s.produceMu.Unlock()

	txs := s.mempool.Copy()
	if len(txs) == 0 && !force {
		return block.Block{}, ErrNoTransactions
	}

	// The parent of the new block is the latest appended block. The first
	// block of the chain has a zero parent hash and an empty starting root.
	var parentHash felt.Felt
	var oldRoot felt.Felt
	var number uint64
	if latest, exists := s.ledger.Latest(); exists {
		parentHash = latest.Hash()
		oldRoot = latest.Header().StateRoot
		number = latest.Number() + 1
	}

	header := block.Header{
		ParentHash: parentHash,
		Number:     number,
		GasPrice:   felt.FromUint64(s.genesis.GasPrice),
		Sequencer:  s.genesis.Sequencer,
		Timestamp:  uint64(time.Now().UTC().Unix()),
	}

	s.ledger.SetPending(block.New(header, nil, nil))
	s.evHandler("state: ProduceBlock: opened pending block %d, parent[%s]", number, parentHash)

	for _, tx := range txs {
		if err := s.ledger.InsertPendingTransaction(tx); err != nil {
			return block.Block{}, err
		}
		s.evHandler("state: ProduceBlock: staged tx[%s] into block %d", tx.Hash, number)
	}

	pending, exists := s.ledger.Pending()
	if !exists {
		return block.Block{}, fmt.Errorf("pending block disappeared during production")
	}

	// Execution happens outside the ledger. The executor owns the state
	// transition; the ledger only records its results.
	newRoot, outputs, diff, err := s.executor.Execute(pending.Transactions(), oldRoot)
	if err != nil {
		s.ledger.ResetPending()
		return block.Block{}, fmt.Errorf("executing block %d: %w", number, err)
	}

	pending.SetOutputs(outputs)
	pending.SetStateRoot(newRoot)
	pending.SetHash()

	if err := s.ledger.Append(pending); err != nil {
		s.ledger.ResetPending()
		return block.Block{}, err
	}

	su := statediff.StateUpdate{
		BlockHash: pending.Hash(),
		NewRoot:   newRoot,
		OldRoot:   oldRoot,
		Diff:      diff,
	}
	if err := s.ledger.SetStateUpdate(number, su); err != nil {
		return block.Block{}, err
	}

	for _, tx := range txs {
		s.mempool.Delete(tx)
	}
	s.ledger.ResetPending()

	s.evHandler("state: ProduceBlock: accepted block %d, hash[%s], txs[%d]", number, pending.Hash(), len(txs))

	return pending, nil
}
