/*
Package raster checks whether hiding a payload has visibly changed a font.

Glyphs of an original font and of its carrier are rendered at a given size
with golang.org/x/image/vector, and the coverage of every pixel is compared.
With small bit budgets the difference is typically zero or a few alpha
levels at the outline's edge.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer traces with key 'glyphsteg.raster'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.raster")
}

// Report is the result of comparing the rendered glyphs of two fonts.
type Report struct {
	PPEM      int   // size in pixels per em
	Glyphs    int   // number of glyphs compared
	Differing int   // number of glyphs with at least one differing pixel
	Worst     int   // glyph index with the largest difference, or -1
	MaxDiff   uint8 // largest difference in coverage of a single pixel
	Pixels    int   // number of differing pixels over all glyphs
}

// frame is the pixel area all glyphs are rendered into, derived from the
// font bounding box of the original font.
type frame struct {
	w, h   int
	tx, ty float32
}

func newFrame(sf *sfnt.Font, buf *sfnt.Buffer, ppem int) (frame, error) {
	bounds, err := sf.Bounds(buf, fixed.I(ppem), font.HintingNone)
	if err != nil {
		return frame{}, err
	}
	const margin = 2
	return frame{
		w:  bounds.Max.X.Ceil() - bounds.Min.X.Floor() + 2*margin,
		h:  bounds.Max.Y.Ceil() - bounds.Min.Y.Floor() + 2*margin,
		tx: float32(margin - bounds.Min.X.Floor()),
		ty: float32(margin - bounds.Min.Y.Floor()),
	}, nil
}

// Compare renders every glyph of fonts orig and stego at ppem pixels per em
// and compares the coverage pixel by pixel. Both fonts have to have the same
// number of glyphs.
func Compare(orig, stego []byte, ppem int) (Report, error) {
	report := Report{PPEM: ppem, Worst: -1}
	if ppem <= 0 {
		return report, fmt.Errorf("invalid size %d ppem", ppem)
	}
	f1, err := fontload.ParseTrueTypeFont(orig)
	if err != nil {
		return report, fmt.Errorf("original font: %w", err)
	}
	f2, err := fontload.ParseTrueTypeFont(stego)
	if err != nil {
		return report, fmt.Errorf("carrier font: %w", err)
	}
	if f1.SFNT.NumGlyphs() != f2.SFNT.NumGlyphs() {
		return report, fmt.Errorf("fonts differ in number of glyphs: %d vs. %d",
			f1.SFNT.NumGlyphs(), f2.SFNT.NumGlyphs())
	}
	var buf1, buf2 sfnt.Buffer
	fr, err := newFrame(f1.SFNT, &buf1, ppem)
	if err != nil {
		return report, err
	}
	rast := vector.NewRasterizer(fr.w, fr.h)
	img1 := image.NewAlpha(image.Rect(0, 0, fr.w, fr.h))
	img2 := image.NewAlpha(image.Rect(0, 0, fr.w, fr.h))
	report.Glyphs = f1.SFNT.NumGlyphs()
	for gid := 0; gid < report.Glyphs; gid++ {
		if err := renderGlyph(rast, img1, f1.SFNT, &buf1, gid, ppem, fr.tx, fr.ty); err != nil {
			return report, fmt.Errorf("original font: %w", err)
		}
		if err := renderGlyph(rast, img2, f2.SFNT, &buf2, gid, ppem, fr.tx, fr.ty); err != nil {
			return report, fmt.Errorf("carrier font: %w", err)
		}
		maxDiff, pixels := compareAlpha(img1, img2)
		if pixels == 0 {
			continue
		}
		report.Differing++
		report.Pixels += pixels
		if report.Worst < 0 || maxDiff > report.MaxDiff {
			report.MaxDiff, report.Worst = maxDiff, gid
		}
	}
	tracer().Debugf("compared %d glyphs at %d ppem, %d differ", report.Glyphs, ppem, report.Differing)
	return report, nil
}

// renderGlyph rasterizes glyph gid into dst, which is cleared first.
func renderGlyph(rast *vector.Rasterizer, dst *image.Alpha, sf *sfnt.Font, buf *sfnt.Buffer,
	gid int, ppem int, tx, ty float32) error {
	//
	segs, err := sf.LoadGlyph(buf, sfnt.GlyphIndex(gid), fixed.I(ppem), nil)
	if err != nil {
		return fmt.Errorf("cannot load glyph %d: %w", gid, err)
	}
	for i := range dst.Pix {
		dst.Pix[i] = 0
	}
	b := dst.Bounds()
	rast.Reset(b.Dx(), b.Dy())
	rast.DrawOp = draw.Src
	drawSegments(rast, segs, tx, ty)
	rast.Draw(dst, b, image.Opaque, image.Point{})
	return nil
}

func drawSegments(rast *vector.Rasterizer, segs sfnt.Segments, tx, ty float32) {
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpLineTo:
			rast.LineTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpQuadTo:
			rast.QuadTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
			)
		case sfnt.SegmentOpCubeTo:
			rast.CubeTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
				tx+float32(seg.Args[2].X)/64, ty+float32(seg.Args[2].Y)/64,
			)
		}
	}
}

func compareAlpha(a, b *image.Alpha) (maxDiff uint8, pixels int) {
	for i := range a.Pix {
		d := a.Pix[i] - b.Pix[i]
		if a.Pix[i] < b.Pix[i] {
			d = b.Pix[i] - a.Pix[i]
		}
		if d > 0 {
			pixels++
			maxDiff = max(maxDiff, d)
		}
	}
	return
}

// RenderPair renders glyph gid of both fonts side by side, the original on
// the left, and writes the image as PNG to w. Pixels where the glyphs differ
// are marked red on the right.
func RenderPair(w io.Writer, orig, stego []byte, gid int, ppem int) error {
	if ppem <= 0 {
		return fmt.Errorf("invalid size %d ppem", ppem)
	}
	f1, err := fontload.ParseTrueTypeFont(orig)
	if err != nil {
		return err
	}
	f2, err := fontload.ParseTrueTypeFont(stego)
	if err != nil {
		return err
	}
	if gid < 0 || gid >= f1.SFNT.NumGlyphs() || gid >= f2.SFNT.NumGlyphs() {
		return errors.New("glyph index out of range")
	}
	var buf1, buf2 sfnt.Buffer
	fr, err := newFrame(f1.SFNT, &buf1, ppem)
	if err != nil {
		return err
	}
	rast := vector.NewRasterizer(fr.w, fr.h)
	a1 := image.NewAlpha(image.Rect(0, 0, fr.w, fr.h))
	a2 := image.NewAlpha(image.Rect(0, 0, fr.w, fr.h))
	if err := renderGlyph(rast, a1, f1.SFNT, &buf1, gid, ppem, fr.tx, fr.ty); err != nil {
		return err
	}
	if err := renderGlyph(rast, a2, f2.SFNT, &buf2, gid, ppem, fr.tx, fr.ty); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, 2*fr.w+1, fr.h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	draw.DrawMask(img, a1.Bounds(), image.Black, image.Point{}, a1, image.Point{}, draw.Over)
	right := a2.Bounds().Add(image.Pt(fr.w+1, 0))
	draw.DrawMask(img, right, image.Black, image.Point{}, a2, image.Point{}, draw.Over)
	for y := 0; y < fr.h; y++ {
		img.SetRGBA(fr.w, y, color.RGBA{128, 128, 128, 255})
		for x := 0; x < fr.w; x++ {
			if a1.AlphaAt(x, y) != a2.AlphaAt(x, y) {
				img.SetRGBA(fr.w+1+x, y, color.RGBA{255, 0, 0, 255})
			}
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
