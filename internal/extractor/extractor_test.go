package extractor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/chain"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// mixedBlock carries one outgoing teleport and one incoming reserve so the
// combined extraction exercises both scans.
func mixedBlock(t *testing.T) *chain.Block {
	t.Helper()
	alice := aliceAccount(t)
	return &chain.Block{
		Number: 9000000,
		Extrinsics: []chain.Extrinsic{
			transferExtrinsic(t, chain.CallLimitedTeleportAssets, chain.XcmTransferArgs{
				Dest:        v4Location(1),
				Beneficiary: v4Location(0, xcm.AccountID32Junction(alice)),
				Assets:      v4Assets(dotAsset("5000317346979")),
			}, alice),
		},
		Events: []chain.Event{
			assetsIssuedEvent(t, 1984, alice, "25000000"),
			processedEvent(t, siblingOrigin(2034), true),
		},
	}
}

func TestExtractBlockOrdering(t *testing.T) {
	transfers, err := New().ExtractBlock(context.Background(), mixedBlock(t), testStorage())
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	// Outgoing records come first, incoming ones after.
	require.NotNil(t, transfers[0].DestinationChain)
	assert.Equal(t, xcm.PolkadotRef(), *transfers[0].DestinationChain)
	require.NotNil(t, transfers[1].OriginChain)
	assert.Equal(t, xcm.PolkadotParachainRef(2034), *transfers[1].OriginChain)
}

func TestExtractBlockIdempotent(t *testing.T) {
	extractor := New()
	block := mixedBlock(t)
	storage := testStorage()

	first, err := extractor.ExtractBlock(context.Background(), block, storage)
	require.NoError(t, err)
	second, err := extractor.ExtractBlock(context.Background(), block, storage)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestExtractBlockEmpty(t *testing.T) {
	transfers, err := New().ExtractBlock(context.Background(), &chain.Block{Number: 1}, testStorage())
	require.NoError(t, err)
	require.NotNil(t, transfers)
	assert.Empty(t, transfers)

	// An empty result still serializes as an array.
	data, err := json.Marshal(transfers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
