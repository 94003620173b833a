package extractor

import (
	"context"
	"fmt"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/chain"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// assetInfo is the resolved display identity of an asset.
type assetInfo struct {
	Name     string
	Decimals uint8
}

// metadataResolver answers metadata lookups against the block's storage
// view, memoizing per block so repeated identities cost one fetch.
type metadataResolver struct {
	storage chain.StorageReader
	byID    map[uint32]assetInfo
	byLoc   map[string]assetInfo
}

func newMetadataResolver(storage chain.StorageReader) *metadataResolver {
	return &metadataResolver{
		storage: storage,
		byID:    make(map[uint32]assetInfo),
		byLoc:   make(map[string]assetInfo),
	}
}

// Local resolves a pallet-assets asset by id. A missing registry entry
// yields a placeholder name and zero decimals, not an error.
func (r *metadataResolver) Local(ctx context.Context, assetID uint32) (assetInfo, error) {
	if info, ok := r.byID[assetID]; ok {
		return info, nil
	}
	md, err := r.storage.AssetMetadata(ctx, assetID)
	if err != nil {
		return assetInfo{}, fmt.Errorf("fetch metadata for asset %d: %w", assetID, err)
	}
	info := assetInfo{Name: fmt.Sprintf("Asset id: %d", assetID)}
	if md != nil {
		info = assetInfo{Name: md.Name, Decimals: md.Decimals}
	}
	r.byID[assetID] = info
	return info, nil
}

// Foreign resolves a foreign asset by location.
func (r *metadataResolver) Foreign(ctx context.Context, location xcm.Location) (assetInfo, error) {
	key := location.Key()
	if info, ok := r.byLoc[key]; ok {
		return info, nil
	}
	md, err := r.storage.ForeignAssetMetadata(ctx, location)
	if err != nil {
		return assetInfo{}, fmt.Errorf("fetch metadata for asset at %s: %w", location, err)
	}
	info := assetInfo{Name: fmt.Sprintf("Asset location: %s", location)}
	if md != nil {
		info = assetInfo{Name: md.Name, Decimals: md.Decimals}
	}
	r.byLoc[key] = info
	return info, nil
}
