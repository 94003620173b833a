// Package blockstore persists the subscriber's position in the finalized
// block stream so a restart does not re-emit already-handled blocks.
package blockstore

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const latestBlockKeyPrefix = "block_states/"

// Store is a badger-backed cursor store keyed by stream name.
type Store struct {
	db *badger.DB
}

func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open block store: %w", err)
	}
	return &Store{db: db}, nil
}

func latestBlockKey(stream string) []byte {
	return []byte(latestBlockKeyPrefix + stream + "/latest_block")
}

// LatestBlock returns the last saved block number for a stream. found is
// false when the stream has no cursor yet.
func (s *Store) LatestBlock(stream string) (number uint64, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(latestBlockKey(stream))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := strconv.ParseUint(string(val), 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt cursor for stream %s: %w", stream, err)
			}
			number = parsed
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("read latest block: %w", err)
	}
	return number, found, nil
}

// SaveLatestBlock records blockNumber as the stream's cursor. Saving an
// older number than the current cursor is a no-op so concurrent per-block
// workers cannot move the cursor backwards.
func (s *Store) SaveLatestBlock(stream string, blockNumber uint64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := latestBlockKey(stream)
		item, err := txn.Get(key)
		if err == nil {
			var current uint64
			if err := item.Value(func(val []byte) error {
				current, err = strconv.ParseUint(string(val), 10, 64)
				return err
			}); err == nil && current >= blockNumber {
				return nil
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, []byte(strconv.FormatUint(blockNumber, 10)))
	})
	if err != nil {
		return fmt.Errorf("save latest block: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
