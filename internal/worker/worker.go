// Package worker drives subscribe mode: it consumes decoded block
// documents from NATS, runs one extraction per finalized block, and fans
// the results out to the output writer and the transfer subject.
package worker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/internal/extractor"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/internal/output"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/blockstore"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/chain"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/logger"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/events"
)

// streamName keys the cursor for the single block stream this indexer
// follows.
const streamName = "asset-hub"

type Worker struct {
	extractor *extractor.Extractor
	cursor    *blockstore.Store
	writer    *output.Writer
	emitter   *events.Emitter // nil disables re-publishing

	conn    *nats.Conn
	subject string
	sub     *nats.Subscription

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	ext *extractor.Extractor,
	cursor *blockstore.Store,
	writer *output.Writer,
	emitter *events.Emitter,
	conn *nats.Conn,
	blockSubject string,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		extractor: ext,
		cursor:    cursor,
		writer:    writer,
		emitter:   emitter,
		conn:      conn,
		subject:   blockSubject,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start subscribes to the block subject. Each document is handled in its
// own goroutine; blocks are independent and the extractor shares no
// mutable state between them.
func (w *Worker) Start() error {
	sub, err := w.conn.Subscribe(w.subject, func(msg *nats.Msg) {
		var doc chain.BlockDocument
		if err := json.Unmarshal(msg.Data, &doc); err != nil {
			logger.Error("Discarding malformed block document", "error", err)
			return
		}
		if w.alreadyProcessed(doc.Number) {
			logger.Debug("Skipping already processed block", "block", doc.Number)
			return
		}
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.processBlock(&doc)
		}()
	})
	if err != nil {
		return err
	}
	w.sub = sub
	logger.Info("Subscribed to finalized blocks", "subject", w.subject)
	return nil
}

func (w *Worker) alreadyProcessed(blockNumber uint32) bool {
	latest, found, err := w.cursor.LatestBlock(streamName)
	if err != nil {
		logger.Warn("Cursor read failed, processing block anyway", "block", blockNumber, "error", err)
		return false
	}
	return found && uint64(blockNumber) <= latest
}

func (w *Worker) processBlock(doc *chain.BlockDocument) {
	transfers, err := w.extractor.ExtractBlock(w.ctx, &doc.Block, doc.Storage())
	if err != nil {
		// Aborted extractions write nothing and do not move the cursor,
		// so the block can be replayed.
		logger.Error("Block extraction failed", "block", doc.Number, "error", err)
		return
	}

	if len(transfers) > 0 {
		logger.Info("Found xcm transfers", "block", doc.Number, "count", len(transfers))
		if err := w.writer.WriteTransfers(transfers); err != nil {
			logger.Error("Writing transfers failed", "block", doc.Number, "error", err)
			return
		}
		if w.emitter != nil {
			if err := w.emitter.EmitTransfers(doc.Number, transfers); err != nil {
				logger.Error("Publishing transfers failed", "block", doc.Number, "error", err)
			}
		}
	}

	if err := w.cursor.SaveLatestBlock(streamName, uint64(doc.Number)); err != nil {
		logger.Error("Saving cursor failed", "block", doc.Number, "error", err)
	}
}

// Stop drains in-flight extractions and releases the subscription.
func (w *Worker) Stop() {
	if w.sub != nil {
		_ = w.sub.Unsubscribe()
	}
	w.cancel()
	w.wg.Wait()
	logger.Info("Worker stopped")
}
