// Package ledger maintains the canonical chain: an append only, dual indexed
// store of blocks, the per block state updates, and the single pending block
// being built by the producer.
package ledger

import (
	"fmt"
	"sync"

	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Serializer interface represents the behavior required to be implemented by
// any package providing durable storage for blocks and state updates.
type Serializer interface {
	WriteBlock(data block.Data) error
	GetBlock(num uint64) (block.Data, error)
	WriteStateUpdate(num uint64, su statediff.StateUpdate) error
	GetStateUpdate(num uint64) (statediff.StateUpdate, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over archived blocks in order.
type Iterator interface {
	Next() (block.Data, error)
	Done() bool
}

// =============================================================================

// SequenceError is returned from Append when the block number does not match
// the next expected position in the chain. It signals a producer bug, not a
// normal runtime condition; the ledger is unchanged when it is returned.
type SequenceError struct {
	Expected uint64
	Actual   uint64
}

// Error implements the error interface.
func (se *SequenceError) Error() string {
	return fmt.Sprintf("unable to append block, expected block number %d, actual %d", se.Expected, se.Actual)
}

// =============================================================================

// Ledger manages the committed chain and the pending block. Writers (the
// single block producer) take exclusive access; query layer readers take
// shared access and always observe fully inserted blocks.
type Ledger struct {
	mu           sync.RWMutex
	hashToNum    map[felt.Felt]uint64
	numToBlock   map[uint64]block.Block
	stateUpdates map[uint64]statediff.StateUpdate
	archive      Serializer

	// The pending block mutates once per transaction, far more often than
	// the committed chain, so it lives under its own lock.
	pendMu  sync.RWMutex
	pending *block.Block
}

// New constructs a ledger and, when an archive is provided, replays it to
// rebuild the in memory indices.
func New(archive Serializer) (*Ledger, error) {
	l := Ledger{
		hashToNum:    make(map[felt.Felt]uint64),
		numToBlock:   make(map[uint64]block.Block),
		stateUpdates: make(map[uint64]statediff.StateUpdate),
		archive:      archive,
	}

	if archive == nil {
		return &l, nil
	}

	iter := archive.ForEach()
	for data, err := iter.Next(); !iter.Done(); data, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		blk := block.ToBlock(data)
		expected := uint64(len(l.numToBlock))
		if blk.Number() != expected {
			return nil, fmt.Errorf("archive is not contiguous, expected block number %d, actual %d", expected, blk.Number())
		}

		l.hashToNum[blk.Hash()] = blk.Number()
		l.numToBlock[blk.Number()] = blk

		if su, err := archive.GetStateUpdate(blk.Number()); err == nil {
			l.stateUpdates[blk.Number()] = su
		}
	}

	return &l, nil
}

// Close releases the underlying archive.
func (l *Ledger) Close() error {
	if l.archive == nil {
		return nil
	}

	return l.archive.Close()
}

// Append adds the specified block to the end of the chain. The block number
// must equal the count of already appended blocks or the ledger is left
// unchanged and a SequenceError is returned. Readers never observe a block
// present in one index but not the other.
func (l *Ledger) Append(blk block.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	expected := uint64(len(l.numToBlock))
	if blk.Number() != expected {
		return &SequenceError{Expected: expected, Actual: blk.Number()}
	}

	if l.archive != nil {
		if err := l.archive.WriteBlock(block.NewData(blk)); err != nil {
			return fmt.Errorf("archiving block %d: %w", blk.Number(), err)
		}
	}

	l.hashToNum[blk.Hash()] = blk.Number()
	l.numToBlock[blk.Number()] = blk

	return nil
}

// CurrentBlockNumber returns the number of the most recently appended block.
// The second return is false when the chain is empty; the value never wraps.
func (l *Ledger) CurrentBlockNumber() (uint64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.numToBlock) == 0 {
		return 0, false
	}

	return uint64(len(l.numToBlock)) - 1, true
}

// Latest returns the most recently appended block.
func (l *Ledger) Latest() (block.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.numToBlock) == 0 {
		return block.Block{}, false
	}

	blk, exists := l.numToBlock[uint64(len(l.numToBlock))-1]
	return blk, exists
}

// ByHash returns a copy of the block with the specified hash.
func (l *Ledger) ByHash(hash felt.Felt) (block.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	num, exists := l.hashToNum[hash]
	if !exists {
		return block.Block{}, false
	}

	blk, exists := l.numToBlock[num]
	return blk, exists
}

// ByNumber returns a copy of the block at the specified position.
func (l *Ledger) ByNumber(num uint64) (block.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blk, exists := l.numToBlock[num]
	return blk, exists
}

// TransactionByBlockNumberAndIndex returns a copy of the transaction at the
// specified position within the specified block. The second return is false
// when the block is missing or the index is past the body.
func (l *Ledger) TransactionByBlockNumberAndIndex(num uint64, index int) (transaction.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blk, exists := l.numToBlock[num]
	if !exists {
		return transaction.Transaction{}, false
	}

	return blk.TransactionByIndex(index)
}

// TotalBlocks returns the number of appended blocks.
func (l *Ledger) TotalBlocks() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.numToBlock))
}

// SetStateUpdate stores the state update for the specified block number.
// Insertion is independent of block append, in either order, and a repeat
// insertion for the same number overwrites the previous value.
func (l *Ledger) SetStateUpdate(num uint64, su statediff.StateUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.archive != nil {
		if err := l.archive.WriteStateUpdate(num, su); err != nil {
			return fmt.Errorf("archiving state update %d: %w", num, err)
		}
	}

	l.stateUpdates[num] = su

	return nil
}

// StateUpdate returns the state update stored for the specified block
// number. The ledger does not guarantee one exists for every appended block.
func (l *Ledger) StateUpdate(num uint64) (statediff.StateUpdate, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	su, exists := l.stateUpdates[num]
	return su, exists
}

// =============================================================================
// Pending block staging. The pending block is volatile: it is excluded from
// the hash and number indices and is replaced by the producer on the next
// successful append.

// SetPending stages the specified block as the block under construction,
// replacing any previous pending block.
func (l *Ledger) SetPending(blk block.Block) {
	l.pendMu.Lock()
	defer l.pendMu.Unlock()

	l.pending = &blk
}

// Pending returns a copy of the block currently under construction.
func (l *Ledger) Pending() (block.Block, bool) {
	l.pendMu.RLock()
	defer l.pendMu.RUnlock()

	if l.pending == nil {
		return block.Block{}, false
	}

	return *l.pending, true
}

// InsertPendingTransaction appends a transaction to the pending block body.
func (l *Ledger) InsertPendingTransaction(tx transaction.Transaction) error {
	l.pendMu.Lock()
	defer l.pendMu.Unlock()

	if l.pending == nil {
		return fmt.Errorf("no pending block staged")
	}

	l.pending.InsertTransaction(tx)

	return nil
}

// ResetPending clears the pending slot.
func (l *Ledger) ResetPending() {
	l.pendMu.Lock()
	defer l.pendMu.Unlock()

	l.pending = nil
}
