package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/types"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

func sampleTransfers() []types.Transfer {
	origin := xcm.PolkadotRef()
	return []types.Transfer{{
		BlockNumber:  8901175,
		OriginChain:  &origin,
		Beneficiary:  "addr",
		Asset:        "DOT",
		Amount:       8.8602977965,
		TransferType: types.TransferTypeTeleport,
	}}
}

func TestWriteTransfersTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	writer, err := NewWriter(path, false)
	require.NoError(t, err)

	// The constructor already clears previous contents.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, writer.WriteTransfers(sampleTransfers()))
	require.NoError(t, writer.WriteTransfers(sampleTransfers()))

	data, err = os.ReadFile(path)
	require.NoError(t, err)

	// Truncate mode keeps only the last array.
	var decoded []types.Transfer
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "DOT", decoded[0].Asset)
}

func TestWriteTransfersAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.json")
	writer, err := NewWriter(path, true)
	require.NoError(t, err)

	require.NoError(t, writer.WriteTransfers(sampleTransfers()))
	require.NoError(t, writer.WriteTransfers(sampleTransfers()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"block_number"`))
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "transfers.json")
	writer, err := NewWriter(path, false)
	require.NoError(t, err)
	require.NoError(t, writer.WriteTransfers(sampleTransfers()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteTransfersEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.json")
	writer, err := NewWriter(path, false)
	require.NoError(t, err)
	require.NoError(t, writer.WriteTransfers(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))

	require.NoError(t, writer.WriteTransfers([]types.Transfer{}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}
