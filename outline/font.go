package outline

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/npillmayer/glyphsteg/lsb"
	"seehuhn.de/go/sfnt/header"
)

// Scaler types of an sfnt table directory.
const (
	scalerTrueType = 0x00010000
	scalerApple    = 0x74727565 // 'true'
	scalerCFF      = 0x4F54544F // 'OTTO'
)

// Tables which have to be present for a font to act as a carrier.
var RequiredTables = []string{"head", "maxp", "loca", "glyf"}

// Font is a TrueType font, decoded as far as necessary to edit the
// coordinates of its outline points.
//
// A Font is not modified by any of its methods and may be shared between
// goroutines.
type Font struct {
	Binary     []byte        // raw font data, as parsed
	Head       HeadTableInfo // typed view of table 'head'
	MaxP       MaxPTableInfo // typed view of table 'maxp'
	scalerType uint32
	tables     map[string][]byte // raw tables by tag
	glyphs     []*glyph          // indexed by glyph ID
	numPoints  int
	issues     []FontError
}

// Load reads and parses a TrueType font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a TrueType font from memory. Parse fails for fonts without
// TrueType outlines (ErrUnsupportedOutlines), and for fonts with critical
// errors in the tables needed for editing outlines. Glyphs which cannot be
// decoded are kept as opaque data and do not contribute points; they are
// reported by Issues.
func Parse(data []byte) (*Font, error) {
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read table directory: %w", err)
	}
	tracer().Debugf("scaler type = %#x, %d tables", info.ScalerType, len(info.Toc))
	if info.ScalerType == scalerCFF {
		return nil, fmt.Errorf("%w: CFF based OpenType font", ErrUnsupportedOutlines)
	}
	if info.ScalerType != scalerTrueType && info.ScalerType != scalerApple {
		return nil, fmt.Errorf("%w: scaler type %#x", ErrUnsupportedOutlines, info.ScalerType)
	}
	f := &Font{
		Binary:     data,
		scalerType: info.ScalerType,
		tables:     make(map[string][]byte, len(info.Toc)),
	}
	for name := range info.Toc {
		if f.tables[name], err = info.ReadTableBytes(r, name); err != nil {
			return nil, fmt.Errorf("cannot read table %q: %w", name, err)
		}
	}
	ec := &errorCollector{}
	if err := f.decodeOutlines(ec); err != nil {
		return nil, err
	}
	f.issues = ec.minor()
	for _, issue := range f.issues {
		tracer().Infof("font issue: %s", issue)
	}
	tracer().Debugf("font has %d glyphs with %d points", len(f.glyphs), f.numPoints)
	return f, nil
}

func (f *Font) decodeOutlines(ec *errorCollector) error {
	for _, name := range RequiredTables {
		if f.tables[name] == nil {
			if _, ok := f.tables["CFF "]; ok && name == "glyf" {
				return fmt.Errorf("%w: font contains CFF outlines", ErrUnsupportedOutlines)
			}
			ec.addError(name, "Missing", "missing required table", SeverityCritical)
			return ec.firstCritical()
		}
	}
	var err error
	if f.Head, err = decodeHead(f.tables["head"]); err != nil {
		ec.addError("head", "Header", err.Error(), SeverityCritical)
		return ec.firstCritical()
	}
	if f.MaxP, err = decodeMaxP(f.tables["maxp"]); err != nil {
		ec.addError("maxp", "Header", err.Error(), SeverityCritical)
		return ec.firstCritical()
	}
	glyf := binarySegm(f.tables["glyf"])
	numGlyphs := int(f.MaxP.NumGlyphs)
	offs, err := decodeLoca(f.tables["loca"], f.Head.IndexToLocFormat, numGlyphs, len(glyf))
	if err != nil {
		ec.addError("loca", "Offsets", err.Error(), SeverityCritical)
		return ec.firstCritical()
	}
	f.glyphs = make([]*glyph, numGlyphs)
	for gid := range f.glyphs {
		data, _ := glyf.view(offs[gid], offs[gid+1]-offs[gid]) // bounds checked by decodeLoca
		g, err := decodeGlyph(data)
		if err != nil {
			ec.addError("glyf", fmt.Sprintf("glyph %d", gid), err.Error(), SeverityMinor)
		}
		if g.simple != nil {
			f.numPoints += g.simple.numPoints()
		}
		f.glyphs[gid] = g
	}
	return nil
}

// NumGlyphs returns the number of glyphs of the font.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs)
}

// NumPoints returns the number of outline points, i.e. the length of Points.
func (f *Font) NumPoints() int {
	return f.numPoints
}

// Issues returns the non-critical problems found while parsing.
func (f *Font) Issues() []FontError {
	return f.issues
}

// TableNames returns the tags of all tables of the font, sorted.
func (f *Font) TableNames() []string {
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GlyphStats counts simple, composite and empty glyphs. Undecodable glyphs
// are counted as composite, as they contribute no points either.
func (f *Font) GlyphStats() (simple, composite, empty int) {
	for _, g := range f.glyphs {
		switch {
		case g.simple != nil:
			simple++
		case len(g.data) == 0:
			empty++
		default:
			composite++
		}
	}
	return
}

// Points returns the coordinates of all outline points of simple glyphs, in
// glyph index order. Every call returns a new slice.
func (f *Font) Points() []lsb.Point {
	points := make([]lsb.Point, 0, f.numPoints)
	for _, g := range f.glyphs {
		if g.simple == nil {
			continue
		}
		for i := range g.simple.xs {
			points = append(points, lsb.Point{X: g.simple.xs[i], Y: g.simple.ys[i]})
		}
	}
	return points
}

// Rebuild creates a new font file with the outline points replaced by
// points, which has to have the same length and order as the result of
// Points. The receiver is not modified.
func (f *Font) Rebuild(points []lsb.Point) ([]byte, error) {
	if len(points) != f.numPoints {
		return nil, fmt.Errorf("%w: font has %d points, got %d", ErrPointCount, f.numPoints, len(points))
	}
	head := f.Head
	fontBBox := head.BBox()
	glyf := make([]byte, 0, len(f.tables["glyf"])+len(f.tables["glyf"])/8)
	offs := make([]int, len(f.glyphs)+1)
	next, changed := 0, 0
	for gid, g := range f.glyphs {
		offs[gid] = len(glyf)
		data := []byte(g.data)
		if g.simple != nil {
			pts := points[next : next+g.simple.numPoints()]
			next += len(pts)
			if g.simple.differs(pts) {
				enc, bbox, err := g.simple.withPoints(pts).encode()
				if err != nil {
					return nil, fmt.Errorf("glyph %d: %w", gid, err)
				}
				data = enc
				fontBBox = fontBBox.extend(bbox)
				changed++
			}
		}
		glyf = append(glyf, data...)
	}
	offs[len(f.glyphs)] = len(glyf)
	loca, format := encodeLoca(offs, f.Head.IndexToLocFormat)
	if format != f.Head.IndexToLocFormat {
		tracer().Infof("glyph data grew to %d bytes, switching to long loca format", len(glyf))
	}
	head.IndexToLocFormat = format
	head.XMin, head.YMin, head.XMax, head.YMax = fontBBox.MinX, fontBBox.MinY, fontBBox.MaxX, fontBBox.MaxY

	tables := make(map[string][]byte, len(f.tables))
	for name, data := range f.tables {
		tables[name] = data
	}
	tables["glyf"] = glyf
	tables["loca"] = loca
	tables["head"] = head.encode(f.tables["head"]) // header.Write patches the checksum in place
	var buf bytes.Buffer
	if _, err := header.Write(&buf, f.scalerType, tables); err != nil {
		return nil, fmt.Errorf("cannot write font: %w", err)
	}
	tracer().Debugf("rebuilt font with %d modified glyphs, %d bytes", changed, buf.Len())
	return buf.Bytes(), nil
}
