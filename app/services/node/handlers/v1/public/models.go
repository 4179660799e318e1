package public

import (
	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// blk is the API representation of a block.
type blk struct {
	Status       block.Status              `json:"status,omitempty"`
	Header       block.Header              `json:"header"`
	Transactions []transaction.Transaction `json:"transactions"`
	Outputs      []transaction.Output      `json:"transaction_outputs"`
}

func toBlockModel(b block.Block) blk {
	return blk{
		Status:       b.Status(),
		Header:       b.Header(),
		Transactions: b.Transactions(),
		Outputs:      b.Outputs(),
	}
}

// height is the API representation of the current chain height.
type height struct {
	Height      uint64 `json:"height"`
	TotalBlocks uint64 `json:"total_blocks"`
}

// submitTx is what a client sends to have a transaction staged. The
// transaction hash is derived by the node, never supplied by the client.
type submitTx struct {
	Type               string      `json:"type" validate:"required,oneof=INVOKE DECLARE DEPLOY"`
	SenderAddress      felt.Felt   `json:"sender_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Calldata           []felt.Felt `json:"calldata"`
	Signature          []felt.Felt `json:"signature"`
	Nonce              felt.Felt   `json:"nonce"`
	MaxFee             felt.Felt   `json:"max_fee"`
	ClassHash          felt.Felt   `json:"class_hash"`
}

func toTransaction(tx submitTx) transaction.Transaction {
	return transaction.Transaction{
		Type:               tx.Type,
		SenderAddress:      tx.SenderAddress,
		EntryPointSelector: tx.EntryPointSelector,
		Calldata:           tx.Calldata,
		Signature:          tx.Signature,
		Nonce:              tx.Nonce,
		MaxFee:             tx.MaxFee,
		ClassHash:          tx.ClassHash,
	}
}
