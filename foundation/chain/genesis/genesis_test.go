package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqlabs/starknode/foundation/chain/genesis"
	"github.com/seqlabs/starknode/foundation/felt"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Load(t *testing.T) {
	t.Log("Given the need to load a genesis file from disk.")
	{
		t.Logf("\tTest 0:\tWhen loading a well formed genesis file.")
		{
			doc := `{
	"chain_id": "SN_GOERLI",
	"gas_price": 100,
	"sequencer": "0xdead",
	"block_interval": 10
}`
			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the genesis file: %v", failed, err)
			}

			gen, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the genesis file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the genesis file.", success)

			if gen.ChainID != "SN_GOERLI" || gen.GasPrice != 100 || gen.BlockInterval != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould carry the configured values: %+v.", failed, gen)
			}
			if !gen.Sequencer.Equal(felt.FromUint64(0xdead)) {
				t.Fatalf("\t%s\tTest 0:\tShould parse the sequencer address.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the configured values.", success)

			chainID, err := gen.ChainIDFelt()
			if err != nil || chainID.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould encode the chain id as a field element.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould encode the chain id as a field element.", success)
		}

		t.Logf("\tTest 1:\tWhen loading broken genesis files.")
		{
			if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a missing file.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a missing file.", success)

			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := os.WriteFile(path, []byte(`{"gas_price": 100}`), 0644); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the genesis file: %v", failed, err)
			}
			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a genesis file without a chain id.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a genesis file without a chain id.", success)
		}
	}
}
