// Package state is the core API for the node. It composes the genesis
// configuration, the mempool, and the ledger, and exposes the operations the
// producer and the query layer need.
package state

import (
	"fmt"
	"sync"

	"github.com/seqlabs/starknode/foundation/chain/genesis"
	"github.com/seqlabs/starknode/foundation/chain/ledger"
	"github.com/seqlabs/starknode/foundation/chain/mempool"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// EventHandler defines a function that is called when events occur in the
// processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background block production.
type Worker interface {
	Shutdown()
	SignalProduceBlock()
}

// Executor interface represents the behavior required to be implemented by
// any package providing transaction execution. Execution is external to the
// ledger: the node hands over the staged transactions and the current state
// root and receives outputs, a new opaque root, and the state diff.
type Executor interface {
	Execute(txs []transaction.Transaction, stateRoot felt.Felt) (felt.Felt, []transaction.Output, statediff.StateDiff, error)
}

// =============================================================================

// Config represents the configuration required to start the node.
type Config struct {
	Genesis   genesis.Genesis
	Archive   ledger.Serializer
	Executor  Executor
	EvHandler EventHandler
}

// State manages the chain for the node.
type State struct {
	genesis   genesis.Genesis
	chainID   felt.Felt
	evHandler EventHandler

	mempool  *mempool.Mempool
	ledger   *ledger.Ledger
	executor Executor

	// Guards a full production cycle so a timed and an on demand
	// production request never interleave.
	produceMu sync.Mutex

	Worker Worker
}

// New constructs the state for chain management, replaying any existing
// archive into the ledger.
func New(cfg Config) (*State, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("an executor is required")
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	chainID, err := cfg.Genesis.ChainIDFelt()
	if err != nil {
		return nil, err
	}

	ldgr, err := ledger.New(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("replaying archive: %w", err)
	}

	if total := ldgr.TotalBlocks(); total > 0 {
		ev("state: startup: replayed %d blocks from archive", total)
	}

	state := State{
		genesis:   cfg.Genesis,
		chainID:   chainID,
		evHandler: ev,
		mempool:   mempool.New(),
		ledger:    ldgr,
		executor:  cfg.Executor,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start block production for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	defer s.ledger.Close()

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// SubmitTransaction accepts a transaction from the RPC layer, derives its
// hash, and places it in the mempool for the producer.
func (s *State) SubmitTransaction(tx transaction.Transaction) (felt.Felt, error) {
	if err := tx.Validate(); err != nil {
		return felt.Felt{}, err
	}

	tx.Hash = tx.ComputeHash(s.chainID)

	n := s.mempool.Upsert(tx)
	s.evHandler("state: SubmitTransaction: tx[%s] accepted, pool size %d", tx.Hash, n)

	if s.Worker != nil {
		s.Worker.SignalProduceBlock()
	}

	return tx.Hash, nil
}

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMempool returns a copy of the mempool in arrival order.
func (s *State) RetrieveMempool() []transaction.Transaction {
	return s.mempool.Copy()
}

// ChainID returns the chain identifier as a field element.
func (s *State) ChainID() felt.Felt {
	return s.chainID
}
