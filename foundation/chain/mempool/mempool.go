// Package mempool maintains the pool of transactions waiting to be pulled
// into the next block by the producer.
package mempool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/seqlabs/starknode/foundation/chain/transaction"
)

// entry pairs a transaction with its arrival order so draining preserves
// submission order.
type entry struct {
	tx      transaction.Transaction
	arrival uint64
}

// Mempool represents a cache of transactions keyed by sender and nonce. A
// resubmission with the same sender and nonce replaces the previous
// transaction.
type Mempool struct {
	mu      sync.RWMutex
	pool    map[string]entry
	counter uint64
}

// New constructs a new mempool for use.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]entry),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool.
func (mp *Mempool) Upsert(tx transaction.Transaction) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[mapKey(tx)] = entry{tx: tx, arrival: mp.counter}
	mp.counter++

	return len(mp.pool)
}

// Delete removes a transaction from the mempool.
func (mp *Mempool) Delete(tx transaction.Transaction) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, mapKey(tx))
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]entry)
}

// Copy returns a list of the current transactions in arrival order.
func (mp *Mempool) Copy() []transaction.Transaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	entries := make([]entry, 0, len(mp.pool))
	for _, ent := range mp.pool {
		entries = append(entries, ent)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].arrival < entries[j].arrival
	})

	txs := make([]transaction.Transaction, len(entries))
	for i, ent := range entries {
		txs[i] = ent.tx
	}

	return txs
}

// mapKey forms the key for the pool from the sender address and nonce.
func mapKey(tx transaction.Transaction) string {
	return fmt.Sprintf("%s:%s", tx.SenderAddress, tx.Nonce)
}
