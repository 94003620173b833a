package chain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// Pallet, event and call names recognized by the extractor.
const (
	PalletBalances      = "Balances"
	PalletAssets        = "Assets"
	PalletForeignAssets = "ForeignAssets"
	PalletMessageQueue  = "MessageQueue"
	PalletPolkadotXcm   = "PolkadotXcm"

	EventMinted    = "Minted"
	EventIssued    = "Issued"
	EventProcessed = "Processed"

	CallLimitedTeleportAssets        = "limited_teleport_assets"
	CallLimitedReserveTransferAssets = "limited_reserve_transfer_assets"
	CallTransferAssets               = "transfer_assets"
)

// BalancesMinted is a native token mint into an account.
type BalancesMinted struct {
	Who    xcm.HexBytes    `json:"who"`
	Amount decimal.Decimal `json:"amount"`
}

// AssetsIssued is a pallet-assets issuance, keyed by local asset id.
type AssetsIssued struct {
	AssetID uint32          `json:"assetId"`
	Owner   xcm.HexBytes    `json:"owner"`
	Amount  decimal.Decimal `json:"amount"`
}

// ForeignAssetsIssued is a foreign-assets issuance, keyed by location.
type ForeignAssetsIssued struct {
	AssetID xcm.Location    `json:"assetId"`
	Owner   xcm.HexBytes    `json:"owner"`
	Amount  decimal.Decimal `json:"amount"`
}

// OriginKind is the aggregated origin of a queued cross-chain message.
type OriginKind string

const (
	OriginHere    OriginKind = "here"
	OriginParent  OriginKind = "parent"
	OriginSibling OriginKind = "sibling"
)

// AggregateOrigin tells which chain enqueued a message: the local chain,
// the parent relay, or a sibling parachain.
type AggregateOrigin struct {
	Kind    OriginKind
	Sibling uint32 // set for sibling origins only
}

func (o AggregateOrigin) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OriginHere, OriginParent:
		return json.Marshal(string(o.Kind))
	case OriginSibling:
		return json.Marshal(map[string]uint32{string(OriginSibling): o.Sibling})
	}
	return nil, fmt.Errorf("marshal aggregate origin: unknown kind %q", o.Kind)
}

func (o *AggregateOrigin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch OriginKind(s) {
		case OriginHere, OriginParent:
			*o = AggregateOrigin{Kind: OriginKind(s)}
			return nil
		}
		return fmt.Errorf("decode aggregate origin: unknown origin %q", s)
	}
	var obj struct {
		Sibling *uint32 `json:"sibling"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Sibling == nil {
		return errors.New("decode aggregate origin: unrecognized shape")
	}
	*o = AggregateOrigin{Kind: OriginSibling, Sibling: *obj.Sibling}
	return nil
}

// MessageQueueProcessed reports the outcome of executing one queued
// cross-chain message.
type MessageQueueProcessed struct {
	ID      string          `json:"id"`
	Origin  AggregateOrigin `json:"origin"`
	Success bool            `json:"success"`
}

func decodeEvent[T any](e Event, pallet, variant string) (*T, bool) {
	if e.Pallet != pallet || e.Variant != variant {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(e.Fields, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (e Event) AsBalancesMinted() (*BalancesMinted, bool) {
	return decodeEvent[BalancesMinted](e, PalletBalances, EventMinted)
}

func (e Event) AsAssetsIssued() (*AssetsIssued, bool) {
	return decodeEvent[AssetsIssued](e, PalletAssets, EventIssued)
}

func (e Event) AsForeignAssetsIssued() (*ForeignAssetsIssued, bool) {
	return decodeEvent[ForeignAssetsIssued](e, PalletForeignAssets, EventIssued)
}

func (e Event) AsMessageQueueProcessed() (*MessageQueueProcessed, bool) {
	return decodeEvent[MessageQueueProcessed](e, PalletMessageQueue, EventProcessed)
}

// XcmTransferArgs is the argument shape shared by the three supported
// PolkadotXcm transfer calls.
type XcmTransferArgs struct {
	Dest         xcm.VersionedLocation `json:"dest"`
	Beneficiary  xcm.VersionedLocation `json:"beneficiary"`
	Assets       xcm.VersionedAssets   `json:"assets"`
	FeeAssetItem uint32                `json:"feeAssetItem"`
}

func (x Extrinsic) decodeXcmTransfer(call string) (*XcmTransferArgs, bool) {
	if x.Pallet != PalletPolkadotXcm || x.Call != call {
		return nil, false
	}
	var args XcmTransferArgs
	if err := json.Unmarshal(x.Args, &args); err != nil {
		return nil, false
	}
	return &args, true
}

func (x Extrinsic) AsLimitedTeleportAssets() (*XcmTransferArgs, bool) {
	return x.decodeXcmTransfer(CallLimitedTeleportAssets)
}

func (x Extrinsic) AsLimitedReserveTransferAssets() (*XcmTransferArgs, bool) {
	return x.decodeXcmTransfer(CallLimitedReserveTransferAssets)
}

func (x Extrinsic) AsTransferAssets() (*XcmTransferArgs, bool) {
	return x.decodeXcmTransfer(CallTransferAssets)
}
