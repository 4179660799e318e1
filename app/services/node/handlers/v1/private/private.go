// Package private maintains the group of handlers for node to operator
// access.
package private

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/seqlabs/starknode/business/web/errs"
	"github.com/seqlabs/starknode/foundation/chain/state"
	"github.com/seqlabs/starknode/foundation/felt"
	"github.com/seqlabs/starknode/foundation/web"
)

// Handlers manages the set of private endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var latestHash felt.Felt
	var height uint64
	if blk, exists := h.State.RetrieveLatestBlock(); exists {
		latestHash = blk.Hash()
		height = blk.Number()
	}

	resp := struct {
		ChainID     felt.Felt `json:"chain_id"`
		Height      uint64    `json:"height"`
		LatestHash  felt.Felt `json:"latest_block_hash"`
		TotalBlocks uint64    `json:"total_blocks"`
		Uncommitted int       `json:"uncommitted"`
	}{
		ChainID:     h.State.ChainID(),
		Height:      height,
		LatestHash:  latestHash,
		TotalBlocks: h.State.RetrieveTotalBlocks(),
		Uncommitted: len(h.State.RetrieveMempool()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ProduceBlock forces the production of the next block from the current
// mempool contents, producing an empty block when the pool is empty.
func (h Handlers) ProduceBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	blk, err := h.State.ProduceBlock(true)
	if err != nil {
		return errs.NewTrusted(err, http.StatusInternalServerError)
	}

	h.Log.Infow("block produced", "traceid", v.TraceID, "block", blk.Number(), "hash", blk.Hash())

	resp := struct {
		Number uint64    `json:"block_number"`
		Hash   felt.Felt `json:"block_hash"`
	}{
		Number: blk.Number(),
		Hash:   blk.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
