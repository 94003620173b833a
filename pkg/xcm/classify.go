package xcm

import (
	"encoding/json"
	"fmt"
)

// ChainKind enumerates the chains this indexer can name as a transfer
// counterpart.
type ChainKind string

const (
	ChainPolkadot          ChainKind = "Polkadot"
	ChainKusama            ChainKind = "Kusama"
	ChainAssetHub          ChainKind = "PolkadotAssetHub"
	ChainPolkadotParachain ChainKind = "PolkadotParachain"
	ChainKusamaParachain   ChainKind = "KusamaParachain"
	ChainEthereum          ChainKind = "Ethereum"
	ChainUnsupported       ChainKind = "Unsupported"
)

// ChainRef names a counterpart chain. Unit kinds serialize as plain
// strings, parachains as {"PolkadotParachain": id}, ethereum as
// {"Ethereum": {"chain_id": id}}. The JSON shape is a downstream contract.
type ChainRef struct {
	Kind    ChainKind
	ParaID  uint32 // parachain kinds only
	ChainID uint64 // ethereum only
}

func PolkadotRef() ChainRef          { return ChainRef{Kind: ChainPolkadot} }
func KusamaRef() ChainRef            { return ChainRef{Kind: ChainKusama} }
func AssetHubRef() ChainRef          { return ChainRef{Kind: ChainAssetHub} }
func EthereumRef(id uint64) ChainRef { return ChainRef{Kind: ChainEthereum, ChainID: id} }

func PolkadotParachainRef(id uint32) ChainRef {
	return ChainRef{Kind: ChainPolkadotParachain, ParaID: id}
}

func KusamaParachainRef(id uint32) ChainRef {
	return ChainRef{Kind: ChainKusamaParachain, ParaID: id}
}

func (c ChainRef) String() string {
	switch c.Kind {
	case ChainPolkadotParachain, ChainKusamaParachain:
		return fmt.Sprintf("%s(%d)", c.Kind, c.ParaID)
	case ChainEthereum:
		return fmt.Sprintf("Ethereum(%d)", c.ChainID)
	}
	return string(c.Kind)
}

func (c ChainRef) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ChainPolkadot, ChainKusama, ChainAssetHub, ChainUnsupported:
		return json.Marshal(string(c.Kind))
	case ChainPolkadotParachain, ChainKusamaParachain:
		return json.Marshal(map[string]uint32{string(c.Kind): c.ParaID})
	case ChainEthereum:
		return json.Marshal(map[string]map[string]uint64{
			string(ChainEthereum): {"chain_id": c.ChainID},
		})
	}
	return nil, fmt.Errorf("marshal chain ref: unknown kind %q", c.Kind)
}

func (c *ChainRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch ChainKind(s) {
		case ChainPolkadot, ChainKusama, ChainAssetHub, ChainUnsupported:
			*c = ChainRef{Kind: ChainKind(s)}
			return nil
		}
		return fmt.Errorf("decode chain ref: unknown chain %q", s)
	}
	var para map[string]json.RawMessage
	if err := json.Unmarshal(data, &para); err != nil {
		return err
	}
	for key, raw := range para {
		switch ChainKind(key) {
		case ChainPolkadotParachain, ChainKusamaParachain:
			var id uint32
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("decode %s ref: %w", key, err)
			}
			*c = ChainRef{Kind: ChainKind(key), ParaID: id}
			return nil
		case ChainEthereum:
			var eth struct {
				ChainID uint64 `json:"chain_id"`
			}
			if err := json.Unmarshal(raw, &eth); err != nil {
				return fmt.Errorf("decode ethereum ref: %w", err)
			}
			*c = ChainRef{Kind: ChainEthereum, ChainID: eth.ChainID}
			return nil
		}
	}
	return fmt.Errorf("decode chain ref: unrecognized shape %s", data)
}

// ClassifyDestination maps a destination location onto a counterpart
// chain. Shapes outside the supported topology come back as Unsupported;
// the caller decides whether that drops the surrounding work.
func ClassifyDestination(loc Location) ChainRef {
	interior := loc.Interior
	switch loc.Parents {
	case 1:
		if len(interior) == 0 {
			return PolkadotRef()
		}
		if len(interior) == 1 && interior[0].Parachain != nil {
			return PolkadotParachainRef(*interior[0].Parachain)
		}
	case 2:
		if len(interior) == 1 && interior[0].GlobalConsensus != nil {
			switch network := *interior[0].GlobalConsensus; network.Kind {
			case NetworkEthereum:
				return EthereumRef(network.ChainID)
			case NetworkKusama:
				return KusamaRef()
			}
		}
		if len(interior) == 2 &&
			interior[0].GlobalConsensus != nil && interior[0].GlobalConsensus.Kind == NetworkKusama &&
			interior[1].Parachain != nil {
			return KusamaParachainRef(*interior[1].Parachain)
		}
	}
	return ChainRef{Kind: ChainUnsupported}
}

// IsConcreteForSibling reports whether an asset location is anchored at
// sibling parachain paraID: one hop up, then directly under that
// parachain. Assets concrete for the counterpart chain are teleportable;
// everything else moves by reserve.
func IsConcreteForSibling(loc Location, paraID uint32) bool {
	return loc.Parents == 1 &&
		len(loc.Interior) > 0 &&
		loc.Interior[0].Parachain != nil &&
		*loc.Interior[0].Parachain == paraID
}
