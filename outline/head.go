package outline

import (
	"encoding/binary"
	"fmt"
)

// HeadTableInfo is a typed view over table 'head'.
// Only fields relevant for outline handling are decoded.
type HeadTableInfo struct {
	MagicNumber      uint32
	Flags            uint16
	UnitsPerEm       uint16
	XMin, YMin       int16
	XMax, YMax       int16
	IndexToLocFormat int16
	GlyphDataFormat  int16
}

const headTableSize = 54

const headMagic = 0x5F0F3CF5

// byte offsets of the fields we write back
const (
	headBBoxOffset   = 36
	headLocFmtOffset = 50
)

func decodeHead(b []byte) (HeadTableInfo, error) {
	var info HeadTableInfo
	if len(b) < headTableSize {
		return info, fmt.Errorf("table too short: %d bytes", len(b))
	}
	info.MagicNumber = binary.BigEndian.Uint32(b[12:16])
	info.Flags = binary.BigEndian.Uint16(b[16:18])
	info.UnitsPerEm = binary.BigEndian.Uint16(b[18:20])
	info.XMin = int16(binary.BigEndian.Uint16(b[36:38]))
	info.YMin = int16(binary.BigEndian.Uint16(b[38:40]))
	info.XMax = int16(binary.BigEndian.Uint16(b[40:42]))
	info.YMax = int16(binary.BigEndian.Uint16(b[42:44]))
	info.IndexToLocFormat = int16(binary.BigEndian.Uint16(b[50:52]))
	info.GlyphDataFormat = int16(binary.BigEndian.Uint16(b[52:54]))
	if info.MagicNumber != headMagic {
		return info, fmt.Errorf("invalid magic number %#x", info.MagicNumber)
	}
	return info, nil
}

// BBox returns the font bounding box stored in 'head'.
func (h HeadTableInfo) BBox() BoundingBox {
	return BoundingBox{MinX: h.XMin, MinY: h.YMin, MaxX: h.XMax, MaxY: h.YMax}
}

// encode patches the writable fields into a copy of the raw table.
func (h HeadTableInfo) encode(raw []byte) []byte {
	b := make([]byte, len(raw))
	copy(b, raw)
	putI16(b[headBBoxOffset:], h.XMin)
	putI16(b[headBBoxOffset+2:], h.YMin)
	putI16(b[headBBoxOffset+4:], h.XMax)
	putI16(b[headBBoxOffset+6:], h.YMax)
	putI16(b[headLocFmtOffset:], h.IndexToLocFormat)
	return b
}
