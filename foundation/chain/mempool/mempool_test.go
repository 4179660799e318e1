package mempool_test

import (
	"testing"

	"github.com/seqlabs/starknode/foundation/chain/mempool"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTx(hash, sender, nonce uint64) transaction.Transaction {
	return transaction.Transaction{
		Hash:          felt.FromUint64(hash),
		Type:          transaction.TypeInvoke,
		SenderAddress: felt.FromUint64(sender),
		Nonce:         felt.FromUint64(nonce),
	}
}

func Test_CRUD(t *testing.T) {
	t.Log("Given the need to manage transactions waiting for a block.")
	{
		t.Logf("\tTest 0:\tWhen adding, replacing and removing transactions.")
		{
			mp := mempool.New()

			if count := mp.Upsert(newTx(1, 0xaa, 0)); count != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould have 1 transaction after the first upsert, got %d.", failed, count)
			}
			if count := mp.Upsert(newTx(2, 0xbb, 0)); count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 transactions after the second upsert, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to add transactions.", success)

			// Same sender and nonce replaces.
			if count := mp.Upsert(newTx(3, 0xaa, 0)); count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould still have 2 transactions after a resubmission, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould replace on a matching sender and nonce.", success)

			mp.Delete(newTx(0, 0xbb, 0))
			if count := mp.Count(); count != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould have 1 transaction after delete, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to delete a transaction.", success)

			mp.Truncate()
			if count := mp.Count(); count != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have 0 transactions after truncate, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to truncate the pool.", success)
		}
	}
}

func Test_CopyOrder(t *testing.T) {
	t.Log("Given the need to drain transactions in arrival order.")
	{
		t.Logf("\tTest 0:\tWhen copying the pool after out of order senders arrive.")
		{
			mp := mempool.New()

			mp.Upsert(newTx(10, 0xcc, 5))
			mp.Upsert(newTx(11, 0xaa, 0))
			mp.Upsert(newTx(12, 0xbb, 3))

			txs := mp.Copy()
			if len(txs) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould copy 3 transactions, got %d.", failed, len(txs))
			}
			for i, want := range []uint64{10, 11, 12} {
				if !txs[i].Hash.Equal(felt.FromUint64(want)) {
					t.Fatalf("\t%s\tTest 0:\tShould find hash %#x at position %d, got %s.", failed, want, i, txs[i].Hash)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould copy transactions in arrival order.", success)

			// A replacement takes a fresh arrival position.
			mp.Upsert(newTx(13, 0xcc, 5))
			txs = mp.Copy()
			if !txs[len(txs)-1].Hash.Equal(felt.FromUint64(13)) {
				t.Fatalf("\t%s\tTest 0:\tShould order a replacement by its new arrival.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould order a replacement by its new arrival.", success)
		}
	}
}
