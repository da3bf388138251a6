package outline

import "fmt"

// Reading bytes from a font's binary representation

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	_ = b[1] // Bounds check hint to compiler
	return int16(b[0])<<8 | int16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func putU16(b []byte, v uint16) {
	_ = b[1]
	b[0], b[1] = byte(v>>8), byte(v)
}

func putI16(b []byte, v int16) {
	putU16(b, uint16(v))
}

// binarySegm is a segment of byte data with bounds-checked access.
type binarySegm []byte

func (b binarySegm) u16(i int) (uint16, error) {
	if i < 0 || i+2 > len(b) {
		return 0, errBufferBounds
	}
	return u16(b[i:]), nil
}

func (b binarySegm) u32(i int) (uint32, error) {
	if i < 0 || i+4 > len(b) {
		return 0, errBufferBounds
	}
	return u32(b[i:]), nil
}

// view returns n bytes at the given offset.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, fmt.Errorf("%w: [%d:%d] of %d bytes", errBufferBounds, offset, offset+n, len(b))
	}
	return b[offset : offset+n], nil
}
