package extractor

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/chain"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// Well-known development account (Alice) and its SS58 renderings under the
// own-chain and generic prefixes.
const (
	aliceHex      = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	alicePolkadot = "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"
	aliceGeneric  = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
)

var errStorageDown = errors.New("storage: connection reset")

func aliceAccount(t *testing.T) []byte {
	t.Helper()
	account, err := hex.DecodeString(aliceHex)
	require.NoError(t, err)
	return account
}

func fieldsJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func mintedEvent(t *testing.T, phase chain.PhaseKind, who []byte, amount string) chain.Event {
	return chain.Event{
		Phase:   chain.Phase{Kind: phase},
		Pallet:  chain.PalletBalances,
		Variant: chain.EventMinted,
		Fields:  fieldsJSON(t, map[string]any{"who": xcm.HexBytes(who), "amount": amount}),
	}
}

func assetsIssuedEvent(t *testing.T, assetID uint32, owner []byte, amount string) chain.Event {
	return chain.Event{
		Phase:   chain.Phase{Kind: chain.PhaseFinalization},
		Pallet:  chain.PalletAssets,
		Variant: chain.EventIssued,
		Fields:  fieldsJSON(t, map[string]any{"assetId": assetID, "owner": xcm.HexBytes(owner), "amount": amount}),
	}
}

func foreignIssuedEvent(t *testing.T, location xcm.Location, owner []byte, amount string) chain.Event {
	return chain.Event{
		Phase:   chain.Phase{Kind: chain.PhaseFinalization},
		Pallet:  chain.PalletForeignAssets,
		Variant: chain.EventIssued,
		Fields:  fieldsJSON(t, map[string]any{"assetId": location, "owner": xcm.HexBytes(owner), "amount": amount}),
	}
}

func processedEvent(t *testing.T, origin chain.AggregateOrigin, success bool) chain.Event {
	return chain.Event{
		Phase:   chain.Phase{Kind: chain.PhaseFinalization},
		Pallet:  chain.PalletMessageQueue,
		Variant: chain.EventProcessed,
		Fields:  fieldsJSON(t, map[string]any{"id": "0x01", "origin": origin, "success": success}),
	}
}

func parentOrigin() chain.AggregateOrigin {
	return chain.AggregateOrigin{Kind: chain.OriginParent}
}

func siblingOrigin(paraID uint32) chain.AggregateOrigin {
	return chain.AggregateOrigin{Kind: chain.OriginSibling, Sibling: paraID}
}

func v4Location(parents uint8, junctions ...xcm.Junction) xcm.VersionedLocation {
	return xcm.VersionedLocation{Version: xcm.VersionV4, Parents: parents, Interior: junctions}
}

func v4Assets(assets ...xcm.Asset) xcm.VersionedAssets {
	return xcm.VersionedAssets{Version: xcm.VersionV4, Assets: assets}
}

func transferExtrinsic(t *testing.T, call string, args chain.XcmTransferArgs, signer []byte) chain.Extrinsic {
	var signerBytes xcm.HexBytes
	if signer != nil {
		signerBytes = append(xcm.HexBytes{0}, signer...)
	}
	return chain.Extrinsic{
		Pallet: chain.PalletPolkadotXcm,
		Call:   call,
		Args:   fieldsJSON(t, args),
		Signer: signerBytes,
	}
}

// testStorage is the registry snapshot the extractor tests run against:
// USDT as local asset 1984 and Glimmer as the foreign asset of sibling 2004.
func testStorage() *chain.StaticStorage {
	return chain.NewStaticStorage(
		map[uint32]chain.AssetMetadata{
			1984: {Name: "Tether USD", Symbol: "USDT", Decimals: 6},
		},
		map[string]chain.AssetMetadata{
			xcm.SiblingLocation(2004).Key(): {Name: "Glimmer", Symbol: "GLMR", Decimals: 18},
		},
	)
}

// failingStorage simulates a lost storage backend.
type failingStorage struct{}

func (failingStorage) AssetMetadata(context.Context, uint32) (*chain.AssetMetadata, error) {
	return nil, errStorageDown
}

func (failingStorage) ForeignAssetMetadata(context.Context, xcm.Location) (*chain.AssetMetadata, error) {
	return nil, errStorageDown
}

// countingStorage counts backend fetches to observe memoization.
type countingStorage struct {
	inner          chain.StorageReader
	localFetches   int
	foreignFetches int
}

func (c *countingStorage) AssetMetadata(ctx context.Context, assetID uint32) (*chain.AssetMetadata, error) {
	c.localFetches++
	return c.inner.AssetMetadata(ctx, assetID)
}

func (c *countingStorage) ForeignAssetMetadata(ctx context.Context, location xcm.Location) (*chain.AssetMetadata, error) {
	c.foreignFetches++
	return c.inner.ForeignAssetMetadata(ctx, location)
}
