package outline

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/glyphsteg/lsb"
)

// Flags of simple glyph points.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
const (
	flagOnCurve = 0x01 // ON_CURVE_POINT
	flagXShort  = 0x02 // X_SHORT_VECTOR
	flagYShort  = 0x04 // Y_SHORT_VECTOR
	flagRepeat  = 0x08 // REPEAT_FLAG
	flagXSame   = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSame   = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
	flagOverlap = 0x40 // OVERLAP_SIMPLE
)

// glyph records are padded to this alignment
const glyfAlign = 4

const glyphHeaderSize = 10

var errIncompleteGlyph = errors.New("incomplete glyph data")

// BoundingBox is the bounding box of a glyph or a font, in font units.
type BoundingBox struct {
	MinX, MinY int16
	MaxX, MaxY int16
}

// extend enlarges bbox to include other.
func (bbox BoundingBox) extend(other BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: min(bbox.MinX, other.MinX),
		MinY: min(bbox.MinY, other.MinY),
		MaxX: max(bbox.MaxX, other.MaxX),
		MaxY: max(bbox.MaxY, other.MaxY),
	}
}

// glyph is an entry of table 'glyf'.
type glyph struct {
	data   binarySegm   // glyph record as found in 'glyf', including padding
	bbox   BoundingBox  // as stored in the glyph header
	simple *simpleGlyph // nil for empty and composite glyphs
}

// simpleGlyph holds the decoded outline of a simple glyph.
// Coordinates are absolute.
type simpleGlyph struct {
	numContours  int16
	endPts       []uint16
	instructions []byte
	flags        []byte // per point, only ON_CURVE_POINT and OVERLAP_SIMPLE are kept
	xs, ys       []int
}

func (sg *simpleGlyph) numPoints() int {
	return len(sg.xs)
}

// decodeGlyph decodes a glyph record. Composite glyphs are not decoded, as
// they do not have any points of their own.
func decodeGlyph(data binarySegm) (*glyph, error) {
	g := &glyph{data: data}
	if len(data) == 0 {
		return g, nil
	}
	if len(data) < glyphHeaderSize {
		return g, fmt.Errorf("%w: header", errIncompleteGlyph)
	}
	numContours := i16(data)
	g.bbox = BoundingBox{
		MinX: i16(data[2:]),
		MinY: i16(data[4:]),
		MaxX: i16(data[6:]),
		MaxY: i16(data[8:]),
	}
	if numContours < 0 { // composite glyph
		return g, nil
	}
	sg, err := decodeSimpleGlyph(numContours, data[glyphHeaderSize:])
	if err != nil {
		return g, err
	}
	g.simple = sg
	return g, nil
}

func decodeSimpleGlyph(numContours int16, buf binarySegm) (*simpleGlyph, error) {
	sg := &simpleGlyph{numContours: numContours}
	n := int(numContours)
	if len(buf) < 2*n+2 {
		return nil, fmt.Errorf("%w: contour end points", errIncompleteGlyph)
	}
	sg.endPts = make([]uint16, n)
	numPoints := 0
	for i := range sg.endPts {
		sg.endPts[i] = u16(buf[2*i:])
		if i > 0 && sg.endPts[i] <= sg.endPts[i-1] {
			return nil, fmt.Errorf("contour end points not increasing at contour %d", i)
		}
		numPoints = int(sg.endPts[i]) + 1
	}
	buf = buf[2*n:]
	instructionLength := int(u16(buf))
	if len(buf) < 2+instructionLength {
		return nil, fmt.Errorf("%w: instructions", errIncompleteGlyph)
	}
	sg.instructions = buf[2 : 2+instructionLength]
	buf = buf[2+instructionLength:]

	// decode the flags
	ff := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if len(buf) < 1 {
			return nil, fmt.Errorf("%w: flags", errIncompleteGlyph)
		}
		flags := buf[0]
		buf = buf[1:]
		ff[i] = flags
		i++
		if flags&flagRepeat != 0 {
			if len(buf) < 1 {
				return nil, fmt.Errorf("%w: flags", errIncompleteGlyph)
			}
			count := int(buf[0])
			buf = buf[1:]
			for ; count > 0 && i < numPoints; count-- {
				ff[i] = flags
				i++
			}
		}
	}

	var err error
	if sg.xs, buf, err = decodeCoordinates(ff, buf, flagXShort, flagXSame); err != nil {
		return nil, fmt.Errorf("%w: x-coordinates", err)
	}
	if sg.ys, _, err = decodeCoordinates(ff, buf, flagYShort, flagYSame); err != nil {
		return nil, fmt.Errorf("%w: y-coordinates", err)
	}
	sg.flags = make([]byte, numPoints)
	for i, f := range ff {
		sg.flags[i] = f & (flagOnCurve | flagOverlap)
	}
	return sg, nil
}

// decodeCoordinates decodes delta-encoded coordinates into absolute values.
// It returns the remaining buffer.
func decodeCoordinates(ff []byte, buf binarySegm, short, same byte) ([]int, binarySegm, error) {
	coords := make([]int, len(ff))
	v := 0
	for i, flags := range ff {
		if flags&short != 0 {
			if len(buf) < 1 {
				return nil, nil, errIncompleteGlyph
			}
			d := int(buf[0])
			buf = buf[1:]
			if flags&same != 0 {
				v += d
			} else {
				v -= d
			}
		} else if flags&same == 0 {
			if len(buf) < 2 {
				return nil, nil, errIncompleteGlyph
			}
			v += int(i16(buf))
			buf = buf[2:]
		}
		coords[i] = v
	}
	return coords, buf, nil
}

// differs reports whether pts differ from the glyph's points.
func (sg *simpleGlyph) differs(pts []lsb.Point) bool {
	for i, p := range pts {
		if p.X != sg.xs[i] || p.Y != sg.ys[i] {
			return true
		}
	}
	return false
}

// withPoints returns a copy of the glyph with coordinates taken from pts.
func (sg *simpleGlyph) withPoints(pts []lsb.Point) *simpleGlyph {
	c := *sg
	c.xs = make([]int, len(pts))
	c.ys = make([]int, len(pts))
	for i, p := range pts {
		c.xs[i], c.ys[i] = p.X, p.Y
	}
	return &c
}

func (sg *simpleGlyph) boundingBox() (BoundingBox, error) {
	if sg.numPoints() == 0 {
		return BoundingBox{}, nil
	}
	minX, minY, maxX, maxY := sg.xs[0], sg.ys[0], sg.xs[0], sg.ys[0]
	for i := 1; i < sg.numPoints(); i++ {
		minX, maxX = min(minX, sg.xs[i]), max(maxX, sg.xs[i])
		minY, maxY = min(minY, sg.ys[i]), max(maxY, sg.ys[i])
	}
	for _, v := range []int{minX, minY, maxX, maxY} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return BoundingBox{}, fmt.Errorf("%w: %d", ErrCoordinateRange, v)
		}
	}
	return BoundingBox{int16(minX), int16(minY), int16(maxX), int16(maxY)}, nil
}

// encode creates a glyph record, padded to glyfAlign, and returns it
// together with the recomputed bounding box.
func (sg *simpleGlyph) encode() ([]byte, BoundingBox, error) {
	bbox, err := sg.boundingBox()
	if err != nil {
		return nil, bbox, err
	}
	n := sg.numPoints()
	ff := make([]byte, n)
	xdata := make([]byte, 0, 2*n)
	ydata := make([]byte, 0, 2*n)
	px, py := 0, 0
	for i := 0; i < n; i++ {
		flags := sg.flags[i]
		var fx, fy byte
		if xdata, fx, err = encodeDelta(xdata, sg.xs[i]-px, flagXShort, flagXSame); err != nil {
			return nil, bbox, err
		}
		if ydata, fy, err = encodeDelta(ydata, sg.ys[i]-py, flagYShort, flagYSame); err != nil {
			return nil, bbox, err
		}
		ff[i] = flags | fx | fy
		px, py = sg.xs[i], sg.ys[i]
	}

	buf := make([]byte, glyphHeaderSize, glyphHeaderSize+2*len(sg.endPts)+2+len(sg.instructions)+n+len(xdata)+len(ydata)+glyfAlign)
	putI16(buf[0:], sg.numContours)
	putI16(buf[2:], bbox.MinX)
	putI16(buf[4:], bbox.MinY)
	putI16(buf[6:], bbox.MaxX)
	putI16(buf[8:], bbox.MaxY)
	for _, e := range sg.endPts {
		buf = append(buf, byte(e>>8), byte(e))
	}
	buf = append(buf, byte(len(sg.instructions)>>8), byte(len(sg.instructions)))
	buf = append(buf, sg.instructions...)
	buf = appendFlags(buf, ff)
	buf = append(buf, xdata...)
	buf = append(buf, ydata...)
	for len(buf)%glyfAlign != 0 {
		buf = append(buf, 0)
	}
	return buf, bbox, nil
}

// encodeDelta appends the encoding of one coordinate delta and returns the
// flag bits describing it.
func encodeDelta(buf []byte, d int, short, same byte) ([]byte, byte, error) {
	switch {
	case d == 0:
		return buf, same, nil
	case d > 0 && d <= 0xFF:
		return append(buf, byte(d)), short | same, nil
	case d < 0 && d >= -0xFF:
		return append(buf, byte(-d)), short, nil
	case d < math.MinInt16 || d > math.MaxInt16:
		return buf, 0, fmt.Errorf("%w: delta %d", ErrCoordinateRange, d)
	}
	return append(buf, byte(d>>8), byte(d)), 0, nil
}

// appendFlags appends point flags, compressing runs with REPEAT_FLAG.
func appendFlags(buf []byte, ff []byte) []byte {
	for i := 0; i < len(ff); {
		j := i + 1
		for j < len(ff) && ff[j] == ff[i] && j-i-1 < 0xFF {
			j++
		}
		if count := j - i - 1; count > 0 {
			buf = append(buf, ff[i]|flagRepeat, byte(count))
		} else {
			buf = append(buf, ff[i])
		}
		i = j
	}
	return buf
}
