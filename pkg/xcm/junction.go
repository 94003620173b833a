package xcm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NetworkKind enumerates the consensus systems a GlobalConsensus junction
// can point at.
type NetworkKind string

const (
	NetworkPolkadot NetworkKind = "polkadot"
	NetworkKusama   NetworkKind = "kusama"
	NetworkEthereum NetworkKind = "ethereum"
)

// NetworkID identifies a top-level consensus system. Unit networks
// (polkadot, kusama) serialize as plain strings, ethereum as a single-key
// object carrying its chain id.
type NetworkID struct {
	Kind    NetworkKind
	ChainID uint64 // set for ethereum only
}

func EthereumNetwork(chainID uint64) NetworkID {
	return NetworkID{Kind: NetworkEthereum, ChainID: chainID}
}

func (n NetworkID) String() string {
	if n.Kind == NetworkEthereum {
		return fmt.Sprintf("Ethereum(%d)", n.ChainID)
	}
	return string(n.Kind)
}

func (n NetworkID) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NetworkPolkadot, NetworkKusama:
		return json.Marshal(string(n.Kind))
	case NetworkEthereum:
		return json.Marshal(map[string]map[string]uint64{
			"ethereum": {"chainId": n.ChainID},
		})
	}
	return nil, fmt.Errorf("marshal network id: unknown kind %q", n.Kind)
}

func (n *NetworkID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch NetworkKind(s) {
		case NetworkPolkadot, NetworkKusama:
			n.Kind = NetworkKind(s)
			return nil
		}
		return fmt.Errorf("decode network id: unknown network %q", s)
	}
	var obj struct {
		Ethereum *struct {
			ChainID uint64 `json:"chainId"`
		} `json:"ethereum"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Ethereum == nil {
		return errors.New("decode network id: unrecognized shape")
	}
	n.Kind = NetworkEthereum
	n.ChainID = obj.Ethereum.ChainID
	return nil
}

// AccountID32 is a 32-byte account id junction payload.
type AccountID32 struct {
	ID      HexBytes   `json:"id"`
	Network *NetworkID `json:"network,omitempty"`
}

// AccountKey20 is a 20-byte account key junction payload.
type AccountKey20 struct {
	Key     HexBytes   `json:"key"`
	Network *NetworkID `json:"network,omitempty"`
}

// Junction is one step in a location's interior. Exactly one field is set;
// the zero value means the junction kind is not part of the supported set.
type Junction struct {
	Parachain       *uint32       `json:"parachain,omitempty"`
	AccountID32     *AccountID32  `json:"accountId32,omitempty"`
	AccountKey20    *AccountKey20 `json:"accountKey20,omitempty"`
	PalletInstance  *uint8        `json:"palletInstance,omitempty"`
	GeneralIndex    *uint64       `json:"generalIndex,omitempty"`
	GlobalConsensus *NetworkID    `json:"globalConsensus,omitempty"`
}

func ParachainJunction(id uint32) Junction {
	return Junction{Parachain: &id}
}

func AccountID32Junction(id []byte) Junction {
	return Junction{AccountID32: &AccountID32{ID: id}}
}

func AccountKey20Junction(key []byte) Junction {
	return Junction{AccountKey20: &AccountKey20{Key: key}}
}

func PalletInstanceJunction(index uint8) Junction {
	return Junction{PalletInstance: &index}
}

func GeneralIndexJunction(value uint64) Junction {
	return Junction{GeneralIndex: &value}
}

func GlobalConsensusJunction(network NetworkID) Junction {
	return Junction{GlobalConsensus: &network}
}

// Known reports whether the junction carries one of the supported kinds.
func (j Junction) Known() bool {
	return j.Parachain != nil || j.AccountID32 != nil || j.AccountKey20 != nil ||
		j.PalletInstance != nil || j.GeneralIndex != nil || j.GlobalConsensus != nil
}

func (j Junction) String() string {
	switch {
	case j.Parachain != nil:
		return fmt.Sprintf("Parachain(%d)", *j.Parachain)
	case j.AccountID32 != nil:
		return fmt.Sprintf("AccountId32(%s)", j.AccountID32.ID)
	case j.AccountKey20 != nil:
		return fmt.Sprintf("AccountKey20(%s)", j.AccountKey20.Key)
	case j.PalletInstance != nil:
		return fmt.Sprintf("PalletInstance(%d)", *j.PalletInstance)
	case j.GeneralIndex != nil:
		return fmt.Sprintf("GeneralIndex(%d)", *j.GeneralIndex)
	case j.GlobalConsensus != nil:
		return fmt.Sprintf("GlobalConsensus(%s)", *j.GlobalConsensus)
	}
	return "Unknown"
}
