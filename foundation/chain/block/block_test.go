package block_test

import (
	"testing"

	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_ComputeHash(t *testing.T) {
	t.Log("Given the need to commit a block to a deterministic hash.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same block twice.")
		{
			header := block.Header{
				ParentHash: felt.FromUint64(111),
				Number:     7,
				GasPrice:   felt.FromUint64(100),
				StateRoot:  felt.FromUint64(222),
				Sequencer:  felt.FromUint64(333),
				Timestamp:  1_700_000_000,
			}
			txs := []transaction.Transaction{
				{Hash: felt.FromUint64(1), Type: transaction.TypeInvoke},
			}

			blk := block.New(header, txs, nil)
			again := block.New(header, txs, nil)

			h1 := blk.ComputeHash()
			h2 := again.ComputeHash()
			if !h1.Equal(h2) {
				t.Fatalf("\t%s\tTest 0:\tShould compute the same hash for the same block: %s vs %s.", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould compute the same hash for the same block.", success)

			if h1.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould not compute a zero hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not compute a zero hash.", success)
		}

		t.Logf("\tTest 1:\tWhen varying committed header fields.")
		{
			base := block.Header{
				ParentHash: felt.FromUint64(111),
				Number:     7,
				StateRoot:  felt.FromUint64(222),
				Sequencer:  felt.FromUint64(333),
				Timestamp:  1_700_000_000,
			}
			baseHash := block.New(base, nil, nil).ComputeHash()

			vary := []struct {
				name   string
				mutate func(h *block.Header)
			}{
				{name: "number", mutate: func(h *block.Header) { h.Number++ }},
				{name: "parent hash", mutate: func(h *block.Header) { h.ParentHash = felt.FromUint64(999) }},
				{name: "state root", mutate: func(h *block.Header) { h.StateRoot = felt.FromUint64(999) }},
				{name: "sequencer", mutate: func(h *block.Header) { h.Sequencer = felt.FromUint64(999) }},
				{name: "timestamp", mutate: func(h *block.Header) { h.Timestamp++ }},
			}

			for _, v := range vary {
				header := base
				v.mutate(&header)
				if block.New(header, nil, nil).ComputeHash().Equal(baseHash) {
					t.Fatalf("\t%s\tTest 1:\tShould compute a different hash when the %s changes.", failed, v.name)
				}
				t.Logf("\t%s\tTest 1:\tShould compute a different hash when the %s changes.", success, v.name)
			}
		}

		t.Logf("\tTest 2:\tWhen varying the transaction count.")
		{
			header := block.Header{Number: 3, Timestamp: 1_700_000_000}
			empty := block.New(header, nil, nil).ComputeHash()

			txs := []transaction.Transaction{{Hash: felt.FromUint64(1), Type: transaction.TypeInvoke}}
			one := block.New(header, txs, nil).ComputeHash()

			if empty.Equal(one) {
				t.Fatalf("\t%s\tTest 2:\tShould compute a different hash when the body grows.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould compute a different hash when the body grows.", success)
		}

		t.Logf("\tTest 3:\tWhen the gas price changes.")
		{
			header := block.Header{Number: 3, GasPrice: felt.FromUint64(100)}
			h1 := block.New(header, nil, nil).ComputeHash()

			header.GasPrice = felt.FromUint64(200)
			h2 := block.New(header, nil, nil).ComputeHash()

			// The gas price is carried in the header but is not part of the
			// hash commitment.
			if !h1.Equal(h2) {
				t.Fatalf("\t%s\tTest 3:\tShould compute the same hash regardless of gas price.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould compute the same hash regardless of gas price.", success)
		}
	}
}

func Test_ArchiveData(t *testing.T) {
	t.Log("Given the need to round trip a block through its archive record.")
	{
		t.Logf("\tTest 0:\tWhen converting a block to Data and back.")
		{
			header := block.Header{
				ParentHash: felt.FromUint64(111),
				Number:     4,
				StateRoot:  felt.FromUint64(222),
				Timestamp:  1_700_000_000,
			}
			txs := []transaction.Transaction{
				{Hash: felt.FromUint64(1), Type: transaction.TypeInvoke},
				{Hash: felt.FromUint64(2), Type: transaction.TypeDeploy},
			}
			outs := []transaction.Output{
				{TxHash: felt.FromUint64(1), ActualFee: felt.FromUint64(10)},
				{TxHash: felt.FromUint64(2), ActualFee: felt.FromUint64(20)},
			}

			blk := block.New(header, txs, outs)
			blk.SetHash()

			back := block.ToBlock(block.NewData(blk))

			if !back.Hash().Equal(blk.Hash()) {
				t.Fatalf("\t%s\tTest 0:\tShould preserve the block hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould preserve the block hash.", success)

			if len(back.Transactions()) != 2 || len(back.Outputs()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould preserve the body and outputs.", failed)
			}
			if tx, exists := back.TransactionByIndex(1); !exists || tx.Type != transaction.TypeDeploy {
				t.Fatalf("\t%s\tTest 0:\tShould preserve transaction order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould preserve the body, outputs and order.", success)
		}
	}
}
