// Package codec implements the byte-to-text encoding of license tokens.
//
// The encoding is the classic padded base64: every 3 input bytes become 4 alphabet
// characters, and the last 1 or 2 bytes of input are zero-filled and marked with one
// '=' per missing byte. Decoding is strict: no whitespace, no padding in the middle
// and no missing padding.
package codec

import (
	"fmt"

	"github.com/nkiryanov/offlicense/internal/apperrors"
)

const (
	StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	Pad byte = '='

	invalid byte = 0xFF
)

// StdEncoding uses A-Z, a-z, 0-9, '+' and '/'
var StdEncoding = NewEncoding(StdAlphabet)

type Encoding struct {
	encode    [64]byte
	decodeMap [256]byte
}

// NewEncoding returns encoding for the alphabet.
// Panics if the alphabet is not 64 distinct bytes or contains padding character.
func NewEncoding(alphabet string) *Encoding {
	if len(alphabet) != 64 {
		panic("codec: alphabet must be 64 bytes long")
	}

	e := &Encoding{}
	for i := range e.decodeMap {
		e.decodeMap[i] = invalid
	}

	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		switch {
		case c == Pad:
			panic("codec: alphabet contains padding character")
		case e.decodeMap[c] != invalid:
			panic(fmt.Sprintf("codec: alphabet contains duplicate %q", c))
		}
		e.encode[i] = c
		e.decodeMap[c] = byte(i)
	}

	return e
}

// EncodedLen returns the length of text for n bytes of input
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the number of bytes s decodes to.
// Every trailing '=' takes one byte off; the result is never negative.
// It does not validate s, so Decode may still fail.
func DecodedLen(s string) int {
	n := len(s) / 4 * 3
	for i := len(s) - 1; i >= 0 && s[i] == Pad; i-- {
		n--
	}
	return max(n, 0)
}

// Encode writes EncodedLen(len(src)) bytes into dst.
// Panics if dst is shorter, like encoding/base64 does.
func (e *Encoding) Encode(dst, src []byte) {
	for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
		remain := len(src) - i

		// Pack up to 3 bytes big-endian into 24 bits, missing bytes are zero
		v := uint(src[i]) << 16
		if remain > 1 {
			v |= uint(src[i+1]) << 8
		}
		if remain > 2 {
			v |= uint(src[i+2])
		}

		dst[j] = e.encode[v>>18&0x3F]
		dst[j+1] = e.encode[v>>12&0x3F]
		dst[j+2] = Pad
		dst[j+3] = Pad

		if remain > 1 {
			dst[j+2] = e.encode[v>>6&0x3F]
		}
		if remain > 2 {
			dst[j+3] = e.encode[v&0x3F]
		}
	}
}

func (e *Encoding) EncodeToString(src []byte) string {
	buf := make([]byte, EncodedLen(len(src)))
	e.Encode(buf, src)
	return string(buf)
}

// Decode decodes s into dst and returns number of bytes written.
// Nothing is written into dst if s is malformed or dst is shorter than DecodedLen(s).
func (e *Encoding) Decode(dst []byte, s string) (int, error) {
	if err := e.check(s); err != nil {
		return 0, err
	}

	n := DecodedLen(s)
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", apperrors.ErrShortBuffer, n, len(dst))
	}

	j := 0
	for i := 0; i < len(s); i += 4 {
		v := uint(e.decodeMap[s[i]])<<18 | uint(e.decodeMap[s[i+1]])<<12
		size := 1

		if s[i+2] != Pad {
			v |= uint(e.decodeMap[s[i+2]]) << 6
			size++
		}
		if s[i+3] != Pad {
			v |= uint(e.decodeMap[s[i+3]])
			size++
		}

		dst[j] = byte(v >> 16)
		if size > 1 {
			dst[j+1] = byte(v >> 8)
		}
		if size > 2 {
			dst[j+2] = byte(v)
		}
		j += size
	}

	return j, nil
}

func (e *Encoding) DecodeString(s string) ([]byte, error) {
	buf := make([]byte, DecodedLen(s))
	n, err := e.Decode(buf, s)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// check validates structure of s without decoding it
func (e *Encoding) check(s string) error {
	if len(s)%4 != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 4", apperrors.ErrMalformedEncoding, len(s))
	}

	// Padding is allowed as 1 or 2 characters suffix only
	padding := len(s) - len(trimPad(s))
	if padding > 2 {
		return fmt.Errorf("%w: too much padding", apperrors.ErrMalformedEncoding)
	}

	for i := 0; i < len(s)-padding; i++ {
		if e.decodeMap[s[i]] == invalid {
			return fmt.Errorf("%w: invalid character %q at %d", apperrors.ErrMalformedEncoding, s[i], i)
		}
	}

	return nil
}

func trimPad(s string) string {
	for len(s) > 0 && s[len(s)-1] == Pad {
		s = s[:len(s)-1]
	}
	return s
}
