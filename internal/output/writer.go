// Package output renders transfer arrays to the configured destination:
// stdout by default, or a file that single queries truncate and the
// subscriber appends to.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/types"
)

// Writer serializes transfer lists as pretty-printed JSON arrays.
type Writer struct {
	mu      sync.Mutex
	path    string // empty: stdout
	appends bool
}

// NewWriter builds a writer for path. With append disabled the file is
// truncated up front; with it enabled each batch is added as a new array.
// An empty path prints to stdout.
func NewWriter(path string, appendMode bool) (*Writer, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		if !appendMode {
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				return nil, fmt.Errorf("create output file: %w", err)
			}
		}
	}
	return &Writer{path: path, appends: appendMode}, nil
}

// WriteTransfers renders one block's transfer array. A nil slice still
// renders as an empty array, never as null.
func (w *Writer) WriteTransfers(transfers []types.Transfer) error {
	if transfers == nil {
		transfers = []types.Transfer{}
	}
	data, err := json.MarshalIndent(transfers, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize transfers: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.path == "" {
		fmt.Println(string(data))
		return nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if w.appends {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	file, err := os.OpenFile(w.path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, string(data)); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
