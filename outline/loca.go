package outline

import "fmt"

// Values of head.indexToLocFormat
const (
	locaShort int16 = 0 // offsets/2 as uint16
	locaLong  int16 = 1 // offsets as uint32
)

// maximum glyf size addressable by short loca offsets
const maxShortLocaOffset = 2 * 0xFFFF

// decodeLoca returns numGlyphs+1 offsets into the 'glyf' table.
// "The loca table stores the offsets to the locations of the glyphs in the
// font, relative to the beginning of the glyph data table. […] In order to
// compute the length of the last glyph element, there is an extra entry
// after the last valid index."
func decodeLoca(loca binarySegm, format int16, numGlyphs int, glyfSize int) ([]int, error) {
	offs := make([]int, numGlyphs+1)
	prev := 0
	for i := range offs {
		var pos int
		switch format {
		case locaShort:
			x, err := loca.u16(2 * i)
			if err != nil {
				return nil, fmt.Errorf("table too short for %d glyphs", numGlyphs)
			}
			pos = 2 * int(x)
		case locaLong:
			x, err := loca.u32(4 * i)
			if err != nil {
				return nil, fmt.Errorf("table too short for %d glyphs", numGlyphs)
			}
			pos = int(x)
		default:
			return nil, fmt.Errorf("unknown loca format %d", format)
		}
		if pos < prev || pos > glyfSize {
			return nil, fmt.Errorf("invalid offset %d for glyph %d", pos, i)
		}
		offs[i] = pos
		prev = pos
	}
	return offs, nil
}

// encodeLoca encodes glyph offsets, preferring the given format. The short
// format is abandoned if offsets are odd or too large for it.
func encodeLoca(offs []int, format int16) ([]byte, int16) {
	if format == locaShort {
		for _, off := range offs {
			if off%2 != 0 || off > maxShortLocaOffset {
				format = locaLong
				break
			}
		}
	}
	var loca []byte
	if format == locaShort {
		loca = make([]byte, 2*len(offs))
		for i, off := range offs {
			putU16(loca[2*i:], uint16(off/2))
		}
		return loca, locaShort
	}
	loca = make([]byte, 4*len(offs))
	for i, off := range offs {
		loca[4*i] = byte(off >> 24)
		loca[4*i+1] = byte(off >> 16)
		loca[4*i+2] = byte(off >> 8)
		loca[4*i+3] = byte(off)
	}
	return loca, locaLong
}
