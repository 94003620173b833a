package chain

import (
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// ForeignAssetEntry pairs a foreign asset's location with its registry
// metadata in a document snapshot.
type ForeignAssetEntry struct {
	Location xcm.Location  `json:"location"`
	Metadata AssetMetadata `json:"metadata"`
}

// BlockDocument is the wire format the decode collaborator publishes per
// finalized block: the block itself plus point-in-time snapshots of the
// asset registries it may reference.
type BlockDocument struct {
	Block
	Assets        map[uint32]AssetMetadata `json:"assets,omitempty"`
	ForeignAssets []ForeignAssetEntry      `json:"foreignAssets,omitempty"`
}

// Storage returns the block-scoped registry view embedded in the document.
func (d *BlockDocument) Storage() StorageReader {
	foreign := make(map[string]AssetMetadata, len(d.ForeignAssets))
	for _, entry := range d.ForeignAssets {
		foreign[entry.Location.Key()] = entry.Metadata
	}
	return NewStaticStorage(d.Assets, foreign)
}
