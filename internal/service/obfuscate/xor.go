// Package obfuscate masks token payloads with a repeating pre-shared key.
//
// It is a plain XOR stream and gives no cryptographic protection.
package obfuscate

import (
	"github.com/nkiryanov/offlicense/internal/apperrors"
)

// DefaultKey shared by the generator and the validator unless configured otherwise
const DefaultKey = "WigglesSecretCode!123"

type Key []byte

// Parse key from configuration value
func ParseKey(s string) (Key, error) {
	if s == "" {
		return nil, apperrors.ErrEmptyKey
	}
	return Key(s), nil
}

// Transform returns data XORed with key repeated over its length.
// Applying it twice with the same key gives the original data. Empty key is identity.
func Transform(data []byte, key Key) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	TransformInPlace(out, key)
	return out
}

// TransformInPlace is Transform that overwrites data, so data must be owned by the caller
func TransformInPlace(data []byte, key Key) {
	if len(key) == 0 {
		return
	}
	for i := range data {
		data[i] ^= key[i%len(key)]
	}
}
