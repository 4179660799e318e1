// Package block defines the block and header types for the chain and the
// pedersen hash commitment that binds them.
package block

import (
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"

	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Status represents where a block sits in its lifecycle. The query layer
// reports it; a freshly built block carries no status.
type Status string

// Set of known block statuses.
const (
	StatusPending      Status = "PENDING"
	StatusAcceptedOnL2 Status = "ACCEPTED_ON_L2"
	StatusRejected     Status = "REJECTED"
)

// Header represents the commitment bearing metadata for one block. Once the
// hash is computed the header must not be mutated.
type Header struct {
	BlockHash  felt.Felt `json:"block_hash"`  // Derived via ComputeHash, never user supplied.
	ParentHash felt.Felt `json:"parent_hash"` // Hash of the previous block in the chain.
	Number     uint64    `json:"block_number"` // Position in the chain, starting at 0.
	GasPrice   felt.Felt `json:"gas_price"`   // Gas price the block was produced under.
	StateRoot  felt.Felt `json:"state_root"`  // Opaque commitment supplied by the executor.
	Sequencer  felt.Felt `json:"sequencer"`   // Address of the block producer.
	Timestamp  uint64    `json:"timestamp"`   // Unix time the block was opened.
}

// Block represents a group of transactions and their outputs committed to
// the chain under a single header.
type Block struct {
	header       Header
	transactions []transaction.Transaction
	outputs      []transaction.Output
	status       Status
}

// New constructs a Block from the specified header fields and body. The
// status is left unset for freshly built blocks.
func New(header Header, txs []transaction.Transaction, outputs []transaction.Output) Block {
	b := Block{
		header:       header,
		transactions: make([]transaction.Transaction, len(txs)),
		outputs:      make([]transaction.Output, len(outputs)),
	}
	copy(b.transactions, txs)
	copy(b.outputs, outputs)

	return b
}

// Header returns a copy of the block header.
func (b Block) Header() Header {
	return b.header
}

// Hash returns the stored block hash. The value is only meaningful after
// SetHash has been called following the last body mutation.
func (b Block) Hash() felt.Felt {
	return b.header.BlockHash
}

// Number returns the block number from the header.
func (b Block) Number() uint64 {
	return b.header.Number
}

// ParentHash returns the parent block hash from the header.
func (b Block) ParentHash() felt.Felt {
	return b.header.ParentHash
}

// Status returns the lifecycle status assigned to the block, if any.
func (b Block) Status() Status {
	return b.status
}

// SetStatus assigns the lifecycle status reported by the query layer.
func (b *Block) SetStatus(status Status) {
	b.status = status
}

// Transactions returns a copy of the ordered transaction list.
func (b Block) Transactions() []transaction.Transaction {
	txs := make([]transaction.Transaction, len(b.transactions))
	copy(txs, b.transactions)
	return txs
}

// Outputs returns a copy of the ordered transaction output list.
func (b Block) Outputs() []transaction.Output {
	outs := make([]transaction.Output, len(b.outputs))
	copy(outs, b.outputs)
	return outs
}

// TransactionByIndex returns a copy of the transaction at the specified
// position, or false when the index is past the end of the body.
func (b Block) TransactionByIndex(index int) (transaction.Transaction, bool) {
	if index < 0 || index >= len(b.transactions) {
		return transaction.Transaction{}, false
	}

	return b.transactions[index], true
}

// InsertTransaction appends a transaction to the body. Only the producer
// calls this, during the pending phase. The stored hash is stale after this
// call and must be recomputed before the block is appended to the chain.
func (b *Block) InsertTransaction(tx transaction.Transaction) {
	b.transactions = append(b.transactions, tx)
}

// SetOutputs records the execution outputs for the body. The producer calls
// this once execution completes; outputs are positional, one per transaction.
func (b *Block) SetOutputs(outputs []transaction.Output) {
	b.outputs = make([]transaction.Output, len(outputs))
	copy(b.outputs, outputs)
}

// SetStateRoot records the state commitment supplied by the executor. The
// stored hash is stale after this call.
func (b *Block) SetStateRoot(root felt.Felt) {
	b.header.StateRoot = root
}

// SetHash computes and stores the block hash, finalizing the header.
func (b *Block) SetHash() {
	b.header.BlockHash = b.ComputeHash()
}

// ComputeHash derives the canonical block hash: a pedersen hash over a fixed
// order list of header and body fields. Several positions are zero
// placeholders for commitments the chain does not compute yet
// (transaction/event commitments, protocol version, extra data); the
// positions are part of the commitment shape and must not be repurposed.
func (b Block) ComputeHash() felt.Felt {
	number := felt.FromUint64(b.header.Number)
	timestamp := felt.FromUint64(b.header.Timestamp)
	txCount := felt.FromUint64(uint64(len(b.transactions)))
	zero := felt.Zero

	return felt.FromElement(pedersenhash.PedersenArray(
		number.Element(),
		zero.Element(), // global state root
		b.header.StateRoot.Element(),
		b.header.Sequencer.Element(),
		timestamp.Element(),
		txCount.Element(),
		zero.Element(), // transaction commitment
		zero.Element(), // event count
		zero.Element(), // event commitment
		zero.Element(), // protocol version
		zero.Element(), // extra data
		b.header.ParentHash.Element(),
	))
}

// =============================================================================

// Data represents what is written to the archive for one block.
type Data struct {
	Header       Header                    `json:"header"`
	Transactions []transaction.Transaction `json:"transactions"`
	Outputs      []transaction.Output      `json:"outputs"`
}

// NewData constructs the value to serialize to the archive.
func NewData(b Block) Data {
	return Data{
		Header:       b.Header(),
		Transactions: b.Transactions(),
		Outputs:      b.Outputs(),
	}
}

// ToBlock converts an archive record back into a Block.
func ToBlock(data Data) Block {
	return New(data.Header, data.Transactions, data.Outputs)
}
