package archnode

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// PubkeyLen is the length of an account or program identifier in bytes.
const PubkeyLen = 32

// Pubkey is a fixed 32-byte account or program identifier. Its JSON form
// is a 32-element array of numbers, matching the node's wire format.
type Pubkey [PubkeyLen]byte

// PubkeyFromHex parses a pubkey from its hex representation. An optional
// "0x" prefix is stripped; the remainder must be exactly 64 hex characters.
func PubkeyFromHex(s string) (Pubkey, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != PubkeyLen*2 {
		return Pubkey{}, fmt.Errorf("pubkey hex must be %d characters, got %d", PubkeyLen*2, len(s))
	}
	var pubkey Pubkey
	if _, err := hex.Decode(pubkey[:], []byte(s)); err != nil {
		return Pubkey{}, fmt.Errorf("invalid pubkey hex: %s", err)
	}
	return pubkey, nil
}

// PubkeyFromBytes copies b into a Pubkey, which must be exactly 32 bytes.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeyLen {
		return Pubkey{}, fmt.Errorf("pubkey must be %d bytes, got %d", PubkeyLen, len(b))
	}
	var pubkey Pubkey
	copy(pubkey[:], b)
	return pubkey, nil
}

// Hex returns the lowercase hex representation of the pubkey.
func (p Pubkey) Hex() string {
	return hex.EncodeToString(p[:])
}

func (p Pubkey) String() string {
	return p.Hex()
}
