// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seqlabs/starknode/foundation/felt"
)

// Genesis represents the genesis file.
type Genesis struct {
	ChainID       string    `json:"chain_id"`       // Short string identifier for this chain instance.
	GasPrice      uint64    `json:"gas_price"`      // Gas price every block is produced under.
	Sequencer     felt.Felt `json:"sequencer"`      // Address credited as the block producer.
	BlockInterval uint      `json:"block_interval"` // Seconds between produced blocks; 0 produces on demand only.
}

// ChainIDFelt returns the chain identifier encoded as a field element for
// use in transaction hashing.
func (g Genesis) ChainIDFelt() (felt.Felt, error) {
	return felt.FromShortString(g.ChainID)
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("parsing genesis file %q: %w", path, err)
	}

	if genesis.ChainID == "" {
		return Genesis{}, fmt.Errorf("genesis file %q is missing a chain id", path)
	}

	return genesis, nil
}
