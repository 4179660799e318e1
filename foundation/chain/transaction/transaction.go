// Package transaction defines the transaction types accepted by the
// sequencer and the outputs produced when they are executed.
package transaction

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"

	"github.com/seqlabs/starknode/foundation/felt"
)

// Set of transaction types supported by the chain.
const (
	TypeInvoke  = "INVOKE"
	TypeDeclare = "DECLARE"
	TypeDeploy  = "DEPLOY"
)

// Transaction represents a single transaction submitted to the sequencer.
// The Hash field is derived, not user supplied, and is set by the node when
// the transaction is accepted into the pool.
type Transaction struct {
	Hash               felt.Felt   `json:"transaction_hash"`
	Type               string      `json:"type" validate:"required,oneof=INVOKE DECLARE DEPLOY"`
	SenderAddress      felt.Felt   `json:"sender_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Calldata           []felt.Felt `json:"calldata"`
	Signature          []felt.Felt `json:"signature"`
	Nonce              felt.Felt   `json:"nonce"`
	MaxFee             felt.Felt   `json:"max_fee"`
	ClassHash          felt.Felt   `json:"class_hash"`
}

// ComputeHash derives the transaction hash binding the fields that identify
// this transaction on the specified chain. Signature values are excluded so
// the hash is what gets signed.
func (tx Transaction) ComputeHash(chainID felt.Felt) felt.Felt {
	typeTag := felt.FromBytes([]byte(tx.Type))
	calldataHash := hashElements(tx.Calldata)
	calldataLen := felt.FromUint64(uint64(len(tx.Calldata)))

	return felt.FromElement(pedersenhash.PedersenArray(
		typeTag.Element(),
		tx.SenderAddress.Element(),
		tx.EntryPointSelector.Element(),
		calldataLen.Element(),
		calldataHash.Element(),
		tx.MaxFee.Element(),
		tx.Nonce.Element(),
		tx.ClassHash.Element(),
		chainID.Element(),
	))
}

// Validate performs structural checks that do not require execution.
func (tx Transaction) Validate() error {
	if tx.Type != TypeInvoke && tx.Type != TypeDeclare && tx.Type != TypeDeploy {
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}

	if tx.SenderAddress.IsZero() {
		return fmt.Errorf("transaction is missing a sender address")
	}

	if tx.Type != TypeInvoke && tx.ClassHash.IsZero() {
		return fmt.Errorf("%s transaction is missing a class hash", tx.Type)
	}

	return nil
}

// hashElements folds a felt slice into a single commitment.
func hashElements(values []felt.Felt) felt.Felt {
	elems := make([]*fp.Element, len(values))
	for i := range values {
		elems[i] = values[i].Element()
	}

	return felt.FromElement(pedersenhash.PedersenArray(elems...))
}

// Output represents the result of executing one transaction. Outputs are
// stored positionally alongside the transactions of a block.
type Output struct {
	TxHash    felt.Felt `json:"transaction_hash"`
	ActualFee felt.Felt `json:"actual_fee"`
	Events    []Event   `json:"events"`
}

// Event represents a single event emitted during execution.
type Event struct {
	FromAddress felt.Felt   `json:"from_address"`
	Keys        []felt.Felt `json:"keys"`
	Data        []felt.Felt `json:"data"`
}
