// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/seqlabs/starknode/business/web/errs"
	"github.com/seqlabs/starknode/foundation/chain/state"
	"github.com/seqlabs/starknode/foundation/events"
	"github.com/seqlabs/starknode/foundation/felt"
	"github.com/seqlabs/starknode/foundation/web"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide node events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(event); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Height returns the current block number and the total block count.
func (h Handlers) Height(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, exists := h.State.RetrieveHeight()
	if !exists {
		return errs.NewTrusted(errors.New("no blocks in the chain yet"), http.StatusNotFound)
	}

	resp := height{
		Height:      num,
		TotalBlocks: h.State.RetrieveTotalBlocks(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// LatestBlock returns the most recently accepted block.
func (h Handlers) LatestBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, exists := h.State.RetrieveLatestBlock()
	if !exists {
		return errs.NewTrusted(errors.New("no blocks in the chain yet"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlockModel(blk), http.StatusOK)
}

// PendingBlock returns the block currently under construction.
func (h Handlers) PendingBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, exists := h.State.RetrievePendingBlock()
	if !exists {
		return errs.NewTrusted(errors.New("no pending block"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlockModel(blk), http.StatusOK)
}

// BlockByHash returns the block with the specified hash.
func (h Handlers) BlockByHash(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hash, err := felt.FromString(web.Param(r, "hash"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	blk, exists := h.State.RetrieveBlockByHash(hash)
	if !exists {
		return errs.NewTrusted(fmt.Errorf("block %s not found", hash), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlockModel(blk), http.StatusOK)
}

// BlockByNumber returns the block at the specified position in the chain.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	blk, exists := h.State.RetrieveBlockByNumber(num)
	if !exists {
		return errs.NewTrusted(fmt.Errorf("block %d not found", num), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlockModel(blk), http.StatusOK)
}

// TransactionByBlockAndIndex returns one transaction from the specified
// block by its position in the body.
func (h Handlers) TransactionByBlockAndIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	index, err := strconv.Atoi(web.Param(r, "index"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx, exists := h.State.RetrieveTransaction(num, index)
	if !exists {
		return errs.NewTrusted(fmt.Errorf("transaction %d in block %d not found", index, num), http.StatusNotFound)
	}

	return web.Respond(ctx, w, tx, http.StatusOK)
}

// StateUpdate returns the state update recorded for the specified block
// number.
func (h Handlers) StateUpdate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	su, exists := h.State.RetrieveStateUpdate(num)
	if !exists {
		return errs.NewTrusted(fmt.Errorf("state update %d not found", num), http.StatusNotFound)
	}

	return web.Respond(ctx, w, su, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var model submitTx
	if err := web.Decode(r, &model); err != nil {
		return err
	}

	tx := toTransaction(model)
	hash, err := h.State.SubmitTransaction(tx)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("transaction submitted", "traceid", v.TraceID, "tx", hash, "type", tx.Type)

	resp := struct {
		Status string    `json:"status"`
		TxHash felt.Felt `json:"transaction_hash"`
	}{
		Status: "transaction added to mempool",
		TxHash: hash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
