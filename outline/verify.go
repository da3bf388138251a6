package outline

import (
	"bytes"
	"fmt"

	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
)

// VerifyReport summarizes an independent check of a font file.
type VerifyReport struct {
	Fontname  string // full font name from table 'name', if present
	NumGlyphs int
	NumPoints int // outline points of simple glyphs
}

// Verify re-reads a font file with two parsers independent of this package,
// to make sure a rebuilt carrier is still a usable font:
// golang.org/x/image/font/sfnt has to load every glyph, and seehuhn.de/go/sfnt
// has to unpack all simple glyphs. Both have to agree on the glyph count.
func Verify(data []byte) (VerifyReport, error) {
	var report VerifyReport
	xf, err := xsfnt.Parse(data)
	if err != nil {
		return report, fmt.Errorf("x/image/sfnt: %w", err)
	}
	report.NumGlyphs = xf.NumGlyphs()
	var buf xsfnt.Buffer
	if name, err := xf.Name(&buf, xsfnt.NameIDFull); err == nil {
		report.Fontname = name
	}
	for gid := 0; gid < report.NumGlyphs; gid++ {
		if _, err := xf.LoadGlyph(&buf, xsfnt.GlyphIndex(gid), fixed.I(64), nil); err != nil {
			return report, fmt.Errorf("x/image/sfnt: glyph %d: %w", gid, err)
		}
	}

	sf, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return report, fmt.Errorf("seehuhn/sfnt: %w", err)
	}
	outlines, ok := sf.Outlines.(*glyf.Outlines)
	if !ok {
		return report, fmt.Errorf("seehuhn/sfnt: %w", ErrUnsupportedOutlines)
	}
	if len(outlines.Glyphs) != report.NumGlyphs {
		return report, fmt.Errorf("glyph count mismatch: %d vs. %d", len(outlines.Glyphs), report.NumGlyphs)
	}
	for gid, g := range outlines.Glyphs {
		if g == nil {
			continue
		}
		simple, ok := g.Data.(glyf.SimpleGlyph)
		if !ok {
			continue
		}
		unpacked, err := simple.Unpack()
		if err != nil {
			return report, fmt.Errorf("seehuhn/sfnt: glyph %d: %w", gid, err)
		}
		for _, cc := range unpacked.Contours {
			report.NumPoints += len(cc)
		}
	}
	tracer().Debugf("verified font %q: %d glyphs, %d points", report.Fontname, report.NumGlyphs, report.NumPoints)
	return report, nil
}
