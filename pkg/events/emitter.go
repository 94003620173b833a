// Package events publishes extracted transfers to NATS so downstream
// consumers do not have to tail the output file.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/logger"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/types"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/retry"
)

// TransferBatch is the message published per block with at least one
// transfer.
type TransferBatch struct {
	BlockNumber uint32           `json:"block_number"`
	Transfers   []types.Transfer `json:"transfers"`
	Timestamp   int64            `json:"timestamp"`
}

type Emitter struct {
	conn    *nats.Conn
	subject string
}

// NewEmitter publishes on an existing connection, e.g. the one the block
// subscription runs on. The caller keeps ownership of the connection.
func NewEmitter(conn *nats.Conn, subject string) *Emitter {
	return &Emitter{conn: conn, subject: subject}
}

// EmitTransfers publishes one block's transfers. Empty batches are
// skipped.
func (e *Emitter) EmitTransfers(blockNumber uint32, transfers []types.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	data, err := json.Marshal(TransferBatch{
		BlockNumber: blockNumber,
		Transfers:   transfers,
		Timestamp:   time.Now().UTC().Unix(),
	})
	if err != nil {
		return err
	}
	return retry.Exponential(func() error {
		return e.conn.Publish(e.subject, data)
	}, 200*time.Millisecond, 10*time.Second, func(err error, next time.Duration) {
		logger.Warn("Retrying transfer publish", "block", blockNumber, "in", next, "reason", err)
	})
}
