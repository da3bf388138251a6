package glyphsteg

import (
	"errors"
	"fmt"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/glyphsteg/outline"
)

// ErrIncomplete is returned if a payload could not be hidden completely,
// either because the carrier is too small or because a coordinate was too
// small to host its bits.
var ErrIncomplete = errors.New("payload not completely hidden")

// ErrUnsupportedFileType is returned for carrier files other than ".ttf".
var ErrUnsupportedFileType = fontload.ErrUnsupportedFileType

// Container is a carrier of outline points.
//
// ExtractPoints has to return the points in the same order for repeated calls,
// and for a container created from the output of RebuildFrom.
type Container interface {
	ExtractPoints() []lsb.Point
	RebuildFrom(points []lsb.Point) ([]byte, error)
}

// FontContainer adapts a TrueType font to interface Container.
type FontContainer struct {
	*outline.Font
}

var _ Container = FontContainer{}

// ExtractPoints returns the outline points of all simple glyphs.
func (fc FontContainer) ExtractPoints() []lsb.Point {
	return fc.Points()
}

// RebuildFrom creates a font file with the outline points replaced.
func (fc FontContainer) RebuildFrom(points []lsb.Point) ([]byte, error) {
	return fc.Rebuild(points)
}

// ParseContainer parses a TrueType font into a container.
func ParseContainer(data []byte) (FontContainer, error) {
	f, err := outline.Parse(data)
	if err != nil {
		return FontContainer{}, err
	}
	return FontContainer{Font: f}, nil
}

// CapacityOf returns the number of payload bits c may carry with change bits
// per coordinate. Options select the header width, which has to be the same
// for hiding and recovering.
func CapacityOf(c Container, change int, opts ...lsb.Option) (int, error) {
	codec, err := lsb.New(opts...)
	if err != nil {
		return 0, err
	}
	return codec.Capacity(len(c.ExtractPoints()), change), nil
}

// HideIn hides payload in the points of c, change bits per coordinate, and
// returns the rebuilt container.
//
// If the payload could not be hidden completely, HideIn returns the rebuilt
// container nevertheless, together with an error wrapping ErrIncomplete.
// Such a container will not yield the payload when recovered.
func HideIn(c Container, payload lsb.Bits, change int, opts ...lsb.Option) ([]byte, error) {
	codec, err := lsb.New(opts...)
	if err != nil {
		return nil, err
	}
	points := c.ExtractPoints()
	hidden, ok, err := codec.Hide(payload, points, change)
	if err != nil {
		return nil, fmt.Errorf("cannot hide payload: %w", err)
	}
	data, err := c.RebuildFrom(hidden)
	if err != nil {
		return nil, fmt.Errorf("cannot rebuild carrier: %w", err)
	}
	if !ok {
		capacity := codec.Capacity(len(points), change)
		tracer().Errorf("payload of %d bits not completely hidden, capacity is %d bits", payload.Len(), capacity)
		return data, fmt.Errorf("%w: payload of %d bits, capacity of %d bits", ErrIncomplete, payload.Len(), capacity)
	}
	tracer().Infof("hid %d bits in %d points, changing %d bits per coordinate", payload.Len(), len(points), change)
	return data, nil
}

// RecoverFrom recovers a payload hidden by HideIn.
func RecoverFrom(c Container, change int, opts ...lsb.Option) (lsb.Bits, error) {
	codec, err := lsb.New(opts...)
	if err != nil {
		return "", err
	}
	bits, err := codec.Recover(c.ExtractPoints(), change)
	if err != nil {
		return "", fmt.Errorf("cannot recover payload: %w", err)
	}
	return bits, nil
}
