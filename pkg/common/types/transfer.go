package types

import (
	"encoding/json"
	"fmt"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// TransferType tells how an asset crossed chains: destroyed-and-reminted
// (teleport) or held in custody by a reserve.
type TransferType string

const (
	TransferTypeTeleport TransferType = "Teleport"
	TransferTypeReserve  TransferType = "Reserve"
)

// Transfer is one normalized cross-chain transfer extracted from a block.
// Incoming transfers carry OriginChain, outgoing ones DestinationChain and
// Sender. Field names are a downstream contract; do not rename them.
type Transfer struct {
	BlockNumber      uint32        `json:"block_number"`
	OriginChain      *xcm.ChainRef `json:"origin_chain,omitempty"`
	DestinationChain *xcm.ChainRef `json:"destination_chain,omitempty"`
	Sender           string        `json:"sender,omitempty"`
	Beneficiary      string        `json:"beneficiary"`
	Asset            string        `json:"asset"`
	Amount           float64       `json:"amount"`
	TransferType     TransferType  `json:"transfer_type"`
}

func (t Transfer) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Transfer) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t Transfer) String() string {
	counterpart := ""
	if t.OriginChain != nil {
		counterpart = "from " + t.OriginChain.String()
	}
	if t.DestinationChain != nil {
		counterpart = "to " + t.DestinationChain.String()
	}
	return fmt.Sprintf(
		"{Block: %d, %s, Beneficiary: %s, Asset: %s, Amount: %v, Type: %s}",
		t.BlockNumber, counterpart, t.Beneficiary, t.Asset, t.Amount, t.TransferType,
	)
}
