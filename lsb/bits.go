package lsb

import (
	"fmt"
	"strings"
)

// Bits is a string of bits, one rune '0' or '1' per bit, most significant
// bit first. Bits is the payload type of the codec.
type Bits string

// ParseBits checks that s consists of '0' and '1' only.
// Whitespace is removed before checking, to allow for grouped input like
// "0100 1000".
func ParseBits(s string) (Bits, error) {
	s = strings.Join(strings.Fields(s), "")
	b := Bits(s)
	if i := b.firstInvalid(); i >= 0 {
		return "", fmt.Errorf("%w: symbol %q at position %d", ErrInvalidBits, s[i], i)
	}
	return b, nil
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return len(b)
}

func (b Bits) String() string {
	return string(b)
}

// returns the index of the first byte which is not a bit symbol, or -1
func (b Bits) firstInvalid() int {
	for i := 0; i < len(b); i++ {
		if b[i] != '0' && b[i] != '1' {
			return i
		}
	}
	return -1
}

// BitsFromBytes converts octets to bits, most significant bit of each
// byte first.
func BitsFromBytes(p []byte) Bits {
	var sb strings.Builder
	sb.Grow(len(p) * 8)
	for _, c := range p {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if c&mask != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return Bits(sb.String())
}

// Bytes converts b back to octets. The length of b has to be a multiple of 8.
func (b Bits) Bytes() ([]byte, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 8", ErrInvalidBits, len(b))
	}
	if i := b.firstInvalid(); i >= 0 {
		return nil, fmt.Errorf("%w: symbol %q at position %d", ErrInvalidBits, b[i], i)
	}
	p := make([]byte, len(b)/8)
	for i := range p {
		var c byte
		for _, bit := range b[i*8 : i*8+8] {
			c = c<<1 | byte(bit-'0')
		}
		p[i] = c
	}
	return p, nil
}
