// Package address renders raw account material into chain-appropriate
// text form: SS58 for 32-byte substrate accounts, hex for 20-byte keys.
package address

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

// SS58 network prefixes used by this indexer.
const (
	// PolkadotPrefix is the own-chain encoding; Asset Hub shares the
	// relay's address format.
	PolkadotPrefix byte = 0
	// GenericPrefix is the default substrate encoding.
	GenericPrefix byte = 42
)

const accountIDLen = 32

// ss58Preimage prefixes the checksum input per the SS58 spec.
var ss58Preimage = []byte("SS58PRE")

// EncodeSS58 renders a 32-byte account id with the given network prefix:
// base58(prefix ++ account ++ blake2b-512("SS58PRE" ++ prefix ++ account)[0:2]).
func EncodeSS58(prefix byte, account []byte) (string, error) {
	if len(account) != accountIDLen {
		return "", fmt.Errorf("encode ss58: account id must be %d bytes, got %d", accountIDLen, len(account))
	}
	payload := make([]byte, 0, accountIDLen+3)
	payload = append(payload, prefix)
	payload = append(payload, account...)

	hasher, err := blake2b.New512(nil)
	if err != nil {
		return "", fmt.Errorf("encode ss58: %w", err)
	}
	hasher.Write(ss58Preimage)
	hasher.Write(payload)
	checksum := hasher.Sum(nil)

	payload = append(payload, checksum[0], checksum[1])
	return base58.Encode(payload), nil
}

// OwnChain renders an account in the local chain's address format.
func OwnChain(account []byte) (string, error) {
	return EncodeSS58(PolkadotPrefix, account)
}

// Generic renders an account in the default substrate address format.
func Generic(account []byte) (string, error) {
	return EncodeSS58(GenericPrefix, account)
}

// EncodeKey20 renders a 20-byte account key as 0x-prefixed lowercase hex.
func EncodeKey20(key []byte) (string, error) {
	if len(key) != 20 {
		return "", fmt.Errorf("encode key20: account key must be 20 bytes, got %d", len(key))
	}
	return "0x" + hex.EncodeToString(key), nil
}
