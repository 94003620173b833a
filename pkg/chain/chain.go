// Package chain models one already-decoded Asset Hub block: its ordered
// events and extrinsics plus the storage view needed to resolve asset
// metadata at that block. Socket handling and SCALE decoding live outside
// this module; blocks arrive here as JSON documents produced by that
// collaborator.
package chain

import (
	"encoding/json"
	"fmt"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

// PhaseKind is the execution phase an event was emitted in.
type PhaseKind string

const (
	PhaseInitialization PhaseKind = "Initialization"
	PhaseApplyExtrinsic PhaseKind = "ApplyExtrinsic"
	PhaseFinalization   PhaseKind = "Finalization"
)

// Phase carries the execution phase and, for ApplyExtrinsic, the index of
// the extrinsic being applied.
type Phase struct {
	Kind  PhaseKind `json:"kind"`
	Index uint32    `json:"index,omitempty"`
}

// Event is a decoded runtime event. Fields stays raw until a caller asks
// for a specific shape through one of the As* accessors.
type Event struct {
	Phase   Phase           `json:"phase"`
	Pallet  string          `json:"pallet"`
	Variant string          `json:"variant"`
	Fields  json.RawMessage `json:"fields"`
}

// Extrinsic is a decoded call. Signer holds the raw MultiAddress bytes of
// the signature origin, nil when the extrinsic is unsigned.
type Extrinsic struct {
	Pallet string          `json:"pallet"`
	Call   string          `json:"call"`
	Args   json.RawMessage `json:"args"`
	Signer xcm.HexBytes    `json:"signer,omitempty"`
}

// Block is one finalized block in execution order.
type Block struct {
	Number     uint32      `json:"number"`
	Hash       string      `json:"hash"`
	Events     []Event     `json:"events"`
	Extrinsics []Extrinsic `json:"extrinsics"`
}

const multiAddressIDLen = 33 // 1 discriminant byte + 32-byte account id

// SignerAccount returns the 32-byte account id behind the signer's
// MultiAddress. ok is false for unsigned extrinsics and for address kinds
// that do not carry a plain account id.
func (x Extrinsic) SignerAccount() ([]byte, bool) {
	switch len(x.Signer) {
	case multiAddressIDLen:
		// MultiAddress::Id; the first byte is the enum discriminant.
		if x.Signer[0] != 0 {
			return nil, false
		}
		return x.Signer[1:], true
	case 32:
		return x.Signer, true
	}
	return nil, false
}

func (e Event) String() string {
	return fmt.Sprintf("%s.%s(%s)", e.Pallet, e.Variant, e.Phase.Kind)
}
