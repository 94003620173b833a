package extractor

import (
	"errors"

	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/xcm"
)

var (
	// ErrUnsuccessfulMessage marks a cross-chain message the chain itself
	// reported as failed. No record is emitted for it.
	ErrUnsuccessfulMessage = errors.New("extractor: xcm message reported failure")

	// ErrUnsupportedAsset marks an asset location outside the supported
	// set (native, pallet-assets local, sibling-native foreign).
	ErrUnsupportedAsset = errors.New("extractor: unsupported asset location")

	// ErrUnsupportedDestination marks a destination location that does not
	// classify to a known counterpart chain.
	ErrUnsupportedDestination = errors.New("extractor: unsupported destination")

	// ErrUnsupportedBeneficiary marks a beneficiary interior that is
	// neither an AccountId32 nor an AccountKey20 junction.
	ErrUnsupportedBeneficiary = errors.New("extractor: unsupported beneficiary")

	// errEventDecode marks an event or account payload that did not match
	// its expected shape.
	errEventDecode = errors.New("extractor: event payload decode failed")
)

// isLocalError tells scan-local failures (the offending event or extrinsic
// contributes zero records, scanning continues) apart from connectivity
// failures, which abort the whole block query.
func isLocalError(err error) bool {
	return errors.Is(err, ErrUnsuccessfulMessage) ||
		errors.Is(err, ErrUnsupportedAsset) ||
		errors.Is(err, ErrUnsupportedDestination) ||
		errors.Is(err, ErrUnsupportedBeneficiary) ||
		errors.Is(err, errEventDecode) ||
		errors.Is(err, xcm.ErrUnsupportedVersion) ||
		errors.Is(err, xcm.ErrTooManyJunctions)
}
