// Package executor provides a minimal devnet execution stub. It performs no
// real contract execution: it books nonces, class declarations, deployments,
// and raw storage writes from the transactions it is handed, and derives the
// next opaque state root by chaining the previous one with a commitment over
// the diff. A real node swaps this for a full virtual machine behind the
// same interface.
package executor

import (
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"

	"github.com/seqlabs/starknode/foundation/chain/statediff"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Basic implements the state.Executor interface for devnet use.
type Basic struct {
	gasPrice felt.Felt
}

// New constructs a Basic executor charging the specified gas price.
func New(gasPrice uint64) *Basic {
	return &Basic{gasPrice: felt.FromUint64(gasPrice)}
}

// Execute books the state effects of the specified transactions and returns
// the new state root, the per transaction outputs, and the state diff.
func (b *Basic) Execute(txs []transaction.Transaction, stateRoot felt.Felt) (felt.Felt, []transaction.Output, statediff.StateDiff, error) {
	diff := statediff.StateDiff{
		StorageDiffs: make(map[felt.Felt][]statediff.StorageEntry),
		Nonces:       make(map[felt.Felt]felt.Felt),
	}

	outputs := make([]transaction.Output, len(txs))
	for i, tx := range txs {
		outputs[i] = transaction.Output{
			TxHash:    tx.Hash,
			ActualFee: b.gasPrice,
		}

		diff.Nonces[tx.SenderAddress] = tx.Nonce

		switch tx.Type {
		case transaction.TypeDeclare:
			diff.DeclaredClasses = append(diff.DeclaredClasses, tx.ClassHash)

		case transaction.TypeDeploy:
			diff.DeployedContracts = append(diff.DeployedContracts, statediff.DeployedContract{
				Address:   tx.SenderAddress,
				ClassHash: tx.ClassHash,
			})

		case transaction.TypeInvoke:
			// Calldata is treated as key/value pairs written to the
			// sender's storage. A trailing unpaired element is dropped.
			for j := 0; j+1 < len(tx.Calldata); j += 2 {
				diff.StorageDiffs[tx.SenderAddress] = append(diff.StorageDiffs[tx.SenderAddress], statediff.StorageEntry{
					Key:   tx.Calldata[j],
					Value: tx.Calldata[j+1],
				})
			}
		}
	}

	return nextRoot(stateRoot, txs), outputs, diff, nil
}

// nextRoot chains the previous root with a commitment over the executed
// transaction hashes. The root is opaque to the rest of the system; only
// determinism matters here.
func nextRoot(prev felt.Felt, txs []transaction.Transaction) felt.Felt {
	elems := make([]*fp.Element, 0, len(txs)+1)
	elems = append(elems, prev.Element())
	for i := range txs {
		elems = append(elems, txs[i].Hash.Element())
	}

	return felt.FromElement(pedersenhash.PedersenArray(elems...))
}
