// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/seqlabs/starknode/app/services/node/handlers/v1/private"
	"github.com/seqlabs/starknode/app/services/node/handlers/v1/public"
	"github.com/seqlabs/starknode/foundation/chain/state"
	"github.com/seqlabs/starknode/foundation/events"
	"github.com/seqlabs/starknode/foundation/web"
	"github.com/gorilla/websocket"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/chain/height", pbl.Height)
	app.Handle(http.MethodGet, version, "/block/latest", pbl.LatestBlock)
	app.Handle(http.MethodGet, version, "/block/pending", pbl.PendingBlock)
	app.Handle(http.MethodGet, version, "/block/hash/:hash", pbl.BlockByHash)
	app.Handle(http.MethodGet, version, "/block/number/:number", pbl.BlockByNumber)
	app.Handle(http.MethodGet, version, "/block/number/:number/tx/:index", pbl.TransactionByBlockAndIndex)
	app.Handle(http.MethodGet, version, "/state/update/:number", pbl.StateUpdate)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodPost, version, "/node/block/produce", prv.ProduceBlock)
}
