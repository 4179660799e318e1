// Package statediff defines the per block state update produced by the
// executor. The ledger stores these blobs keyed by block number and never
// interprets their contents.
package statediff

import "github.com/seqlabs/starknode/foundation/felt"

// StorageEntry represents a single storage write within a contract.
type StorageEntry struct {
	Key   felt.Felt `json:"key"`
	Value felt.Felt `json:"value"`
}

// DeployedContract represents a contract deployed during the block.
type DeployedContract struct {
	Address   felt.Felt `json:"address"`
	ClassHash felt.Felt `json:"class_hash"`
}

// StateDiff represents the raw changes resulting from executing the
// transactions of one block.
type StateDiff struct {
	StorageDiffs      map[felt.Felt][]StorageEntry `json:"storage_diffs"`
	DeclaredClasses   []felt.Felt                  `json:"declared_classes"`
	DeployedContracts []DeployedContract           `json:"deployed_contracts"`
	Nonces            map[felt.Felt]felt.Felt      `json:"nonces"`
}

// StateUpdate binds a state diff to the block it resulted from and the state
// roots before and after it was applied.
type StateUpdate struct {
	BlockHash felt.Felt `json:"block_hash"`
	NewRoot   felt.Felt `json:"new_root"`
	OldRoot   felt.Felt `json:"old_root"`
	Diff      StateDiff `json:"state_diff"`
}
