package xcm

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Supported XCM version tags. Anything else is rejected with
// ErrUnsupportedVersion so callers can tell "new protocol version" apart
// from a malformed value.
const (
	VersionV3 = "V3"
	VersionV4 = "V4"
)

// ErrUnsupportedVersion is returned when a versioned value carries a
// version tag outside the supported pair.
var ErrUnsupportedVersion = errors.New("xcm: unsupported xcm version")

// LocationV3 is the V3 wire form of a location. Its junction set matches
// the canonical form for every shape this indexer understands, so the
// conversion below is a structural validation rather than a field mapping.
type LocationV3 struct {
	Parents  uint8     `json:"parents"`
	Interior Junctions `json:"interior"`
}

// LocationFromV3 converts a V3 location into the canonical form. The
// conversion is total over valid V3 values; it fails only on inputs that
// break the interior invariants.
func LocationFromV3(l LocationV3) (Location, error) {
	out := Location{Parents: l.Parents, Interior: l.Interior}
	if err := out.Validate(); err != nil {
		return Location{}, err
	}
	return out, nil
}

// VersionedLocation is a version-tagged location as found in transfer call
// arguments.
type VersionedLocation struct {
	Version  string    `json:"version"`
	Parents  uint8     `json:"parents"`
	Interior Junctions `json:"interior"`
}

// Latest converts the versioned value into the canonical location.
func (v VersionedLocation) Latest() (Location, error) {
	switch v.Version {
	case VersionV3:
		return LocationFromV3(LocationV3{Parents: v.Parents, Interior: v.Interior})
	case VersionV4:
		loc := Location{Parents: v.Parents, Interior: v.Interior}
		if err := loc.Validate(); err != nil {
			return Location{}, err
		}
		return loc, nil
	}
	return Location{}, fmt.Errorf("%w: location version %q", ErrUnsupportedVersion, v.Version)
}

// Asset pairs a concrete asset location with a fungible amount. Amounts
// are u128 on chain, so they travel as decimals rather than uint64.
type Asset struct {
	Location Location        `json:"location"`
	Amount   decimal.Decimal `json:"amount"`
}

// VersionedAssets is the version-tagged asset list of a transfer call.
type VersionedAssets struct {
	Version string  `json:"version"`
	Assets  []Asset `json:"assets"`
}

// Latest converts the versioned list into canonical assets, validating
// each location under the rules of the tagged version.
func (v VersionedAssets) Latest() ([]Asset, error) {
	switch v.Version {
	case VersionV3, VersionV4:
	default:
		return nil, fmt.Errorf("%w: assets version %q", ErrUnsupportedVersion, v.Version)
	}
	out := make([]Asset, 0, len(v.Assets))
	for _, a := range v.Assets {
		loc := a.Location
		if v.Version == VersionV3 {
			converted, err := LocationFromV3(LocationV3{Parents: loc.Parents, Interior: loc.Interior})
			if err != nil {
				return nil, err
			}
			loc = converted
		} else if err := loc.Validate(); err != nil {
			return nil, err
		}
		out = append(out, Asset{Location: loc, Amount: a.Amount})
	}
	return out, nil
}
