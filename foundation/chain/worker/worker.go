// Package worker implements background block production for the node.
package worker

import (
	"errors"
	"sync"
	"time"

	"github.com/seqlabs/starknode/foundation/chain/state"
)

// Worker manages the production workflow for the chain. There is exactly
// one producer goroutine; signals and ticks funnel into it so production
// cycles never overlap.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	ticker       *time.Ticker
	shut         chan struct{}
	produceBlock chan bool
	evHandler    state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts the production goroutine. An interval of 0 disables timed
// production; blocks are then produced on signal only.
func Run(st *state.State, interval time.Duration, evHandler state.EventHandler) {
	if interval == 0 {
		// The ticker must exist for the select below; park it.
		interval = 24 * time.Hour
	}

	w := Worker{
		state:        st,
		ticker:       time.NewTicker(interval),
		shut:         make(chan struct{}),
		produceBlock: make(chan bool, 1),
		evHandler:    evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.produceOperations()
	}()
}

// Shutdown terminates the production goroutine.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()
	close(w.shut)
	w.wg.Wait()
}

// SignalProduceBlock signals the goroutine to produce the next block from
// the current mempool contents. The signal is dropped if one is already
// queued.
func (w *Worker) SignalProduceBlock() {
	select {
	case w.produceBlock <- true:
	default:
	}
}

// produceOperations handles block production on ticks and signals.
func (w *Worker) produceOperations() {
	for {
		select {
		case <-w.ticker.C:
			w.runProduceOperation(false)

		case force := <-w.produceBlock:
			w.runProduceOperation(force)

		case <-w.shut:
			w.evHandler("worker: produceOperations: received shut signal")
			return
		}
	}
}

// runProduceOperation takes the current mempool contents through a full
// production cycle.
func (w *Worker) runProduceOperation(force bool) {
	blk, err := w.state.ProduceBlock(force)
	if err != nil {
		if errors.Is(err, state.ErrNoTransactions) {
			return
		}
		w.evHandler("worker: runProduceOperation: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runProduceOperation: produced block %d, hash[%s]", blk.Number(), blk.Hash())
}
