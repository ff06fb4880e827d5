package logsbloom

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EncodeHex encodes b as a 0x-prefixed lowercase hex string. An empty slice
// encodes as "0x".
func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}

// DecodeHex decodes a 0x-prefixed hex string. Missing prefix, odd length and
// non-hex characters are all reported as ErrDecode wrapping the cause.
func DecodeHex(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDecode, abbreviate(s), err)
	}
	return b, nil
}

// abbreviate shortens long inputs for error messages; a full logsBloom is
// 514 characters of hex.
func abbreviate(s string) string {
	const maxLen = 24
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
