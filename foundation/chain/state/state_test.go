package state_test

import (
	"errors"
	"testing"

	"github.com/seqlabs/starknode/foundation/chain/executor"
	"github.com/seqlabs/starknode/foundation/chain/genesis"
	"github.com/seqlabs/starknode/foundation/chain/ledger/archive"
	"github.com/seqlabs/starknode/foundation/chain/state"
	"github.com/seqlabs/starknode/foundation/chain/transaction"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newGenesis() genesis.Genesis {
	return genesis.Genesis{
		ChainID:   "SN_GOERLI",
		GasPrice:  100,
		Sequencer: felt.FromUint64(0xdead),
	}
}

func newState(t *testing.T, arch *archive.Memory) *state.State {
	cfg := state.Config{
		Genesis:  newGenesis(),
		Executor: executor.New(100),
	}
	if arch != nil {
		cfg.Archive = arch
	}

	st, err := state.New(cfg)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	return st
}

func invokeTx(sender, nonce uint64) transaction.Transaction {
	return transaction.Transaction{
		Type:          transaction.TypeInvoke,
		SenderAddress: felt.FromUint64(sender),
		Calldata:      []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)},
		Nonce:         felt.FromUint64(nonce),
		MaxFee:        felt.FromUint64(1000),
	}
}

func Test_SubmitAndProduce(t *testing.T) {
	t.Log("Given the need to turn submitted transactions into blocks.")
	{
		t.Logf("\tTest 0:\tWhen submitting two transactions and producing a block.")
		{
			st := newState(t, nil)
			defer st.Shutdown()

			hash1, err := st.SubmitTransaction(invokeTx(0xaa, 0))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the first transaction: %v", failed, err)
			}
			hash2, err := st.SubmitTransaction(invokeTx(0xbb, 0))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the second transaction: %v", failed, err)
			}
			if hash1.IsZero() || hash1.Equal(hash2) {
				t.Fatalf("\t%s\tTest 0:\tShould assign distinct non zero hashes.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould assign distinct non zero hashes.", success)

			if count := len(st.RetrieveMempool()); count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 mempool transactions, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould have 2 mempool transactions.", success)

			blk, err := st.ProduceBlock(false)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to produce a block: %v", failed, err)
			}
			if blk.Number() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould produce block 0, got %d.", failed, blk.Number())
			}
			if !blk.ParentHash().IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould have a zero parent hash for the first block.", failed)
			}
			if len(blk.Transactions()) != 2 || len(blk.Outputs()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould carry both transactions and their outputs.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould produce block 0 with both transactions.", success)

			if count := len(st.RetrieveMempool()); count != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have an empty mempool after production, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould have an empty mempool after production.", success)

			if _, exists := st.RetrievePendingBlock(); exists {
				t.Fatalf("\t%s\tTest 0:\tShould have no pending block after production.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have no pending block after production.", success)

			latest, exists := st.RetrieveLatestBlock()
			if !exists || !latest.Hash().Equal(blk.Hash()) {
				t.Fatalf("\t%s\tTest 0:\tShould retrieve the produced block as latest.", failed)
			}
			byHash, exists := st.RetrieveBlockByHash(blk.Hash())
			if !exists || byHash.Number() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould retrieve the produced block by hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould retrieve the produced block by hash and as latest.", success)

			su, exists := st.RetrieveStateUpdate(0)
			if !exists {
				t.Fatalf("\t%s\tTest 0:\tShould have a state update for block 0.", failed)
			}
			if !su.BlockHash.Equal(blk.Hash()) || !su.OldRoot.IsZero() || su.NewRoot.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould bind the state update to the block and its roots.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have a state update bound to block 0.", success)
		}

		t.Logf("\tTest 1:\tWhen producing with an empty mempool.")
		{
			st := newState(t, nil)
			defer st.Shutdown()

			if _, err := st.ProduceBlock(false); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to produce an empty block unforced: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to produce an empty block unforced.", success)

			blk, err := st.ProduceBlock(true)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould produce an empty block when forced: %v", failed, err)
			}
			if len(blk.Transactions()) != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould produce an empty body.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce an empty block when forced.", success)
		}
	}
}

func Test_Chaining(t *testing.T) {
	t.Log("Given the need to chain produced blocks together.")
	{
		t.Logf("\tTest 0:\tWhen producing three blocks in a row.")
		{
			st := newState(t, nil)
			defer st.Shutdown()

			var parent felt.Felt
			for i := uint64(0); i < 3; i++ {
				if _, err := st.SubmitTransaction(invokeTx(0xaa, i)); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction %d: %v", failed, i, err)
				}

				blk, err := st.ProduceBlock(false)
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to produce block %d: %v", failed, i, err)
				}
				if blk.Number() != i {
					t.Fatalf("\t%s\tTest 0:\tShould produce block number %d, got %d.", failed, i, blk.Number())
				}
				if !blk.ParentHash().Equal(parent) {
					t.Fatalf("\t%s\tTest 0:\tShould chain block %d to its parent.", failed, i)
				}
				parent = blk.Hash()
			}
			t.Logf("\t%s\tTest 0:\tShould produce three chained blocks.", success)

			height, exists := st.RetrieveHeight()
			if !exists || height != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould be at height 2, got %d.", failed, height)
			}
			if total := st.RetrieveTotalBlocks(); total != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould have 3 total blocks, got %d.", failed, total)
			}
			t.Logf("\t%s\tTest 0:\tShould report height 2 and 3 total blocks.", success)

			// State updates chain their roots the same way blocks chain hashes.
			for i := uint64(1); i < 3; i++ {
				prev, _ := st.RetrieveStateUpdate(i - 1)
				cur, exists := st.RetrieveStateUpdate(i)
				if !exists || !cur.OldRoot.Equal(prev.NewRoot) {
					t.Fatalf("\t%s\tTest 0:\tShould chain state update %d to the previous root.", failed, i)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould chain state update roots.", success)
		}
	}
}

func Test_Restart(t *testing.T) {
	t.Log("Given the need to resume a chain from its archive after a restart.")
	{
		t.Logf("\tTest 0:\tWhen restarting a node that produced two blocks.")
		{
			arch := archive.NewMemory()

			st := newState(t, arch)
			for i := uint64(0); i < 2; i++ {
				if _, err := st.SubmitTransaction(invokeTx(0xaa, i)); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to submit transaction %d: %v", failed, i, err)
				}
				if _, err := st.ProduceBlock(false); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to produce block %d: %v", failed, i, err)
				}
			}
			latest, _ := st.RetrieveLatestBlock()
			st.Shutdown()
			t.Logf("\t%s\tTest 0:\tShould be able to produce two blocks before the restart.", success)

			restarted := newState(t, arch)
			defer restarted.Shutdown()

			if total := restarted.RetrieveTotalBlocks(); total != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould replay 2 blocks, got %d.", failed, total)
			}
			replayedLatest, exists := restarted.RetrieveLatestBlock()
			if !exists || !replayedLatest.Hash().Equal(latest.Hash()) {
				t.Fatalf("\t%s\tTest 0:\tShould replay the same latest block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould replay the chain from the archive.", success)

			// Production picks up where the chain left off.
			if _, err := restarted.SubmitTransaction(invokeTx(0xaa, 2)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit after the restart: %v", failed, err)
			}
			blk, err := restarted.ProduceBlock(false)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to produce after the restart: %v", failed, err)
			}
			if blk.Number() != 2 || !blk.ParentHash().Equal(latest.Hash()) {
				t.Fatalf("\t%s\tTest 0:\tShould chain block 2 to the replayed tip.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould chain new production to the replayed tip.", success)
		}
	}
}

func Test_SubmitValidation(t *testing.T) {
	t.Log("Given the need to reject malformed transactions at submission.")
	{
		t.Logf("\tTest 0:\tWhen submitting transactions missing required fields.")
		{
			st := newState(t, nil)
			defer st.Shutdown()

			bad := invokeTx(0xaa, 0)
			bad.Type = "TRANSFER"
			if _, err := st.SubmitTransaction(bad); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject an unknown transaction type.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an unknown transaction type.", success)

			bad = invokeTx(0, 0)
			if _, err := st.SubmitTransaction(bad); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject a zero sender address.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a zero sender address.", success)

			bad = invokeTx(0xaa, 0)
			bad.Type = transaction.TypeDeclare
			if _, err := st.SubmitTransaction(bad); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject a declare without a class hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a declare without a class hash.", success)

			if count := len(st.RetrieveMempool()); count != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the mempool empty, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the mempool empty.", success)
		}
	}
}
