package lsb

import (
	"fmt"
	"strconv"
	"strings"
)

// lengthHeader encodes a payload length as a zero-padded unsigned binary
// numeral of the codec's header width.
func (c *Codec) lengthHeader(n int) (Bits, error) {
	if uint64(n) >= uint64(1)<<c.headerWidth {
		return "", fmt.Errorf("%w: %d bits, header of width %d holds at most %d",
			ErrPayloadTooLarge, n, c.headerWidth, uint64(1)<<c.headerWidth-1)
	}
	h := strconv.FormatUint(uint64(n), 2)
	return Bits(strings.Repeat("0", c.headerWidth-len(h)) + h), nil
}

// payloadLength decodes the length header at the start of frame.
// frame must hold at least headerWidth bits.
func (c *Codec) payloadLength(frame Bits) (int, error) {
	n, err := strconv.ParseUint(string(frame[:c.headerWidth]), 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: length header %q", ErrInvalidBits, frame[:c.headerWidth])
	}
	return int(n), nil
}

// frameChunks iterates over the 2×change bit chunks of a frame, splitting
// each chunk into the bits for x and the bits for y. The last chunk may be
// short; its y part may be empty.
type frameChunks struct {
	frame  Bits
	change int
	pos    int
}

func (fc *frameChunks) next() (xbits, ybits Bits, ok bool) {
	if fc.pos >= len(fc.frame) {
		return "", "", false
	}
	end := min(fc.pos+2*fc.change, len(fc.frame))
	chunk := fc.frame[fc.pos:end]
	fc.pos = end
	if len(chunk) <= fc.change {
		return chunk, "", true
	}
	return chunk[:fc.change], chunk[fc.change:], true
}

// written returns the number of frame bits handed out so far.
func (fc *frameChunks) written() int {
	return fc.pos
}
