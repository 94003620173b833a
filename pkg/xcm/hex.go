package xcm

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HexBytes is a byte slice that marshals to and from 0x-prefixed
// lowercase hexadecimal in JSON.
type HexBytes []byte

func (h HexBytes) String() string {
	return "0x" + hex.EncodeToString(h)
}

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode hex bytes: %w", err)
	}
	*h = raw
	return nil
}
