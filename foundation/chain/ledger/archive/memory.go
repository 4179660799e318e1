// Package archive implements the ledger's Serializer interface for durable
// and in memory storage of blocks and state updates.
package archive

import (
	"fmt"
	"sync"

	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/ledger"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
)

// Memory represents the serialization implementation for keeping blocks and
// state updates in memory. Used for ephemeral devnets and tests.
type Memory struct {
	mu           sync.RWMutex
	blocks       map[uint64]block.Data
	stateUpdates map[uint64]statediff.StateUpdate
}

// NewMemory constructs a Memory archive for use.
func NewMemory() *Memory {
	return &Memory{
		blocks:       make(map[uint64]block.Data),
		stateUpdates: make(map[uint64]statediff.StateUpdate),
	}
}

// Close in this implementation has nothing to do.
func (m *Memory) Close() error {
	return nil
}

// Reset clears all archived data.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = make(map[uint64]block.Data)
	m.stateUpdates = make(map[uint64]statediff.StateUpdate)

	return nil
}

// WriteBlock stores the specified block record keyed by its number.
func (m *Memory) WriteBlock(data block.Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks[data.Header.Number] = data

	return nil
}

// GetBlock returns the block record stored under the specified number.
func (m *Memory) GetBlock(num uint64) (block.Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.blocks[num]
	if !exists {
		return block.Data{}, fmt.Errorf("block %d: %w", num, ErrNotFound)
	}

	return data, nil
}

// WriteStateUpdate stores the state update under the specified block number.
func (m *Memory) WriteStateUpdate(num uint64, su statediff.StateUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stateUpdates[num] = su

	return nil
}

// GetStateUpdate returns the state update stored under the specified number.
func (m *Memory) GetStateUpdate(num uint64) (statediff.StateUpdate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	su, exists := m.stateUpdates[num]
	if !exists {
		return statediff.StateUpdate{}, fmt.Errorf("state update %d: %w", num, ErrNotFound)
	}

	return su, nil
}

// ForEach returns an iterator to walk through the archived blocks starting
// with block number 0.
func (m *Memory) ForEach() ledger.Iterator {
	return &iterator{get: m.GetBlock}
}
