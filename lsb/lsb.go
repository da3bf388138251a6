package lsb

import (
	"fmt"
	"strings"
)

// DefaultHeaderWidth is the default width of the length header in bits.
// It allows for payloads of up to 2^23-1 bits (about 1 MB).
const DefaultHeaderWidth = 23

// MaxHeaderWidth is the largest supported width of the length header.
const MaxHeaderWidth = 62

// MaxChange is the largest bit budget. An int magnitude has at most 64
// binary digits.
const MaxChange = 64

// PerceptibleChange is the bit budget from which on changes to glyph outlines
// will probably be visible to the human eye, depending on the font.
const PerceptibleChange = 6

// Point is a carrier slot, i.e. the coordinates of an outline point.
type Point struct {
	X, Y int
}

// Codec hides and recovers payloads. The zero value is not usable, clients
// call New. A Codec holds no state besides its configuration and may be used
// concurrently.
type Codec struct {
	headerWidth int
}

// Option configures a Codec.
type Option func(*Codec)

// WithHeaderWidth sets the width of the length header in bits (default 23).
// Hiding and recovering must use the same header width.
func WithHeaderWidth(w int) Option {
	return func(c *Codec) {
		c.headerWidth = w
	}
}

// New creates a codec. Without options, the length header is
// DefaultHeaderWidth bits wide.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{headerWidth: DefaultHeaderWidth}
	for _, opt := range opts {
		opt(c)
	}
	if c.headerWidth < 1 || c.headerWidth > MaxHeaderWidth {
		return nil, fmt.Errorf("%w: %d, valid range is 1…%d", ErrHeaderWidth, c.headerWidth, MaxHeaderWidth)
	}
	return c, nil
}

// HeaderWidth returns the width of the length header in bits.
func (c *Codec) HeaderWidth() int {
	return c.headerWidth
}

var defaultCodec = &Codec{headerWidth: DefaultHeaderWidth}

func checkBudget(change int) error {
	if change < 1 || change > MaxChange {
		return fmt.Errorf("%w: %d, valid range is 1…%d", ErrInvalidBitBudget, change, MaxChange)
	}
	if change >= PerceptibleChange {
		tracer().Infof("changing %d bits per coordinate will probably be detectable to the human eye", change)
	}
	return nil
}

// --- Capacity --------------------------------------------------------------

// Capacity returns the maximum payload length in bits for a carrier of
// pointCount points, with change bits per coordinate. The result is negative
// for carriers which cannot even hold the length header.
func (c *Codec) Capacity(pointCount, change int) int {
	return pointCount*change*2 - c.headerWidth
}

// Capacity returns the payload capacity in bits, using the default header width.
func Capacity(pointCount, change int) int {
	return defaultCodec.Capacity(pointCount, change)
}

// --- Hide ------------------------------------------------------------------

// Hide writes payload into a copy of points, change bits per coordinate, and
// returns the modified copy. points is not altered.
//
// ok reports whether the complete frame has been written. It is false if the
// carrier ran out of points, or if a coordinate was too small to host its
// change-bit window. In the latter case the offending point and all points
// after it are left unmodified. Clients have to check ok; an incomplete
// embedding is not an error.
//
// Hide fails with ErrPayloadTooLarge if the payload length does not fit into
// the length header.
func (c *Codec) Hide(payload Bits, points []Point, change int) (result []Point, ok bool, err error) {
	if err = checkBudget(change); err != nil {
		return nil, false, err
	}
	if i := payload.firstInvalid(); i >= 0 {
		return nil, false, fmt.Errorf("%w: symbol %q at position %d", ErrInvalidBits, payload[i], i)
	}
	header, err := c.lengthHeader(payload.Len())
	if err != nil {
		return nil, false, err
	}
	result = make([]Point, len(points))
	copy(result, points)
	chunks := &frameChunks{frame: header + payload, change: change}
	for i := 0; ; i++ {
		xbits, ybits, more := chunks.next()
		if !more {
			break
		}
		if i >= len(result) {
			tracer().Infof("carrier exhausted after %d points, %d of %d frame bits written",
				len(result), chunks.written()-len(xbits)-len(ybits), len(chunks.frame))
			return result, false, nil
		}
		x, err := Embed(result[i].X, window(result[i].X, xbits, change))
		if err != nil {
			tracer().Infof("stopping at point #%d: %v", i, err)
			return result, false, nil
		}
		y, err := Embed(result[i].Y, window(result[i].Y, ybits, change))
		if err != nil {
			tracer().Infof("stopping at point #%d: %v", i, err)
			return result, false, nil
		}
		result[i] = Point{X: x, Y: y}
	}
	tracer().Debugf("hid %d payload bits in %d points", payload.Len(), (len(chunks.frame)+2*change-1)/(2*change))
	return result, true, nil
}

// window widens a short, non-empty chunk half to the full change bits a
// reader extracts. The half takes the high positions of the window, the low
// positions keep the current bits of v.
func window(v int, half Bits, change int) Bits {
	if len(half) == 0 || len(half) >= change {
		return half
	}
	return half + Extract(v, change)[len(half):]
}

// Hide hides payload in points, using the default header width.
// See (*Codec).Hide.
func Hide(payload Bits, points []Point, change int) ([]Point, bool, error) {
	return defaultCodec.Hide(payload, points, change)
}

// --- Recover ---------------------------------------------------------------

// Recover reads a payload from points, change bits per coordinate.
//
// Recover cannot tell whether points actually carry a payload. Reading from a
// carrier which has not been written by Hide, or with a different bit budget
// or header width, yields a meaningless length header. Recover then either
// returns garbage, or fails with ErrTruncatedCarrier if the carrier is too
// short for the decoded length.
func (c *Codec) Recover(points []Point, change int) (Bits, error) {
	if err := checkBudget(change); err != nil {
		return "", err
	}
	var frame strings.Builder
	next := 0
	readUpTo := func(n int) error {
		for frame.Len() < n {
			if next >= len(points) {
				return fmt.Errorf("%w: need %d bits, carrier of %d points holds %d",
					ErrTruncatedCarrier, n, len(points), frame.Len())
			}
			p := points[next]
			next++
			frame.WriteString(string(Extract(p.X, change)))
			frame.WriteString(string(Extract(p.Y, change)))
		}
		return nil
	}
	if err := readUpTo(c.headerWidth); err != nil {
		return "", err
	}
	length, err := c.payloadLength(Bits(frame.String()))
	if err != nil {
		return "", err
	}
	total := c.headerWidth + length
	if available := len(points) * 2 * change; total > available {
		return "", fmt.Errorf("%w: length header announces %d bits, carrier holds %d",
			ErrTruncatedCarrier, length, available-c.headerWidth)
	}
	frame.Grow(total - frame.Len() + 2*change)
	if err := readUpTo(total); err != nil {
		return "", err
	}
	tracer().Debugf("recovered %d payload bits from %d points", length, next)
	return Bits(frame.String()[c.headerWidth:total]), nil
}

// Recover reads a payload from points, using the default header width.
// See (*Codec).Recover.
func Recover(points []Point, change int) (Bits, error) {
	return defaultCodec.Recover(points, change)
}
