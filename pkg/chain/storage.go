package chain

import (
	"context"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// AssetMetadata is the registry entry describing an asset.
type AssetMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals uint8  `json:"decimals"`
}

// StorageReader is the block-scoped view of the two asset registries:
// pallet-assets keyed by local id and foreign-assets keyed by location.
// A missing entry is (nil, nil); a non-nil error means the storage
// backend itself failed and the whole block query should abort.
type StorageReader interface {
	AssetMetadata(ctx context.Context, assetID uint32) (*AssetMetadata, error)
	ForeignAssetMetadata(ctx context.Context, location xcm.Location) (*AssetMetadata, error)
}

// StaticStorage is a StorageReader over in-memory registry snapshots, as
// shipped inside a BlockDocument and as used by tests.
type StaticStorage struct {
	assets  map[uint32]AssetMetadata
	foreign map[string]AssetMetadata
}

func NewStaticStorage(assets map[uint32]AssetMetadata, foreign map[string]AssetMetadata) *StaticStorage {
	if assets == nil {
		assets = map[uint32]AssetMetadata{}
	}
	if foreign == nil {
		foreign = map[string]AssetMetadata{}
	}
	return &StaticStorage{assets: assets, foreign: foreign}
}

func (s *StaticStorage) AssetMetadata(_ context.Context, assetID uint32) (*AssetMetadata, error) {
	md, ok := s.assets[assetID]
	if !ok {
		return nil, nil
	}
	return &md, nil
}

func (s *StaticStorage) ForeignAssetMetadata(_ context.Context, location xcm.Location) (*AssetMetadata, error) {
	md, ok := s.foreign[location.Key()]
	if !ok {
		return nil, nil
	}
	return &md, nil
}
