package lsb

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type CodecTestEnviron struct {
	suite.Suite
	codec4 *Codec // codec with a 4 bit header
}

// listen for 'go test' command --> run test methods
func TestCodecFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	suite.Run(t, new(CodecTestEnviron))
}

// run once, before test suite methods
func (env *CodecTestEnviron) SetupSuite() {
	tracing.Select("glyphsteg.lsb").SetTraceLevel(tracing.LevelInfo)
	var err error
	env.codec4, err = New(WithHeaderWidth(4))
	env.Require().NoError(err)
}

func carrier(n int, v int) []Point {
	pp := make([]Point, n)
	for i := range pp {
		pp[i] = Point{X: v, Y: v}
	}
	return pp
}

func randomCarrier(rnd *rand.Rand, n int) []Point {
	pp := make([]Point, n)
	for i := range pp {
		// realistic outline coordinates, away from zero
		x, y := 64+rnd.Intn(2000), 64+rnd.Intn(2000)
		if rnd.Intn(4) == 0 {
			x = -x
		}
		if rnd.Intn(4) == 0 {
			y = -y
		}
		pp[i] = Point{X: x, Y: y}
	}
	return pp
}

func randomBits(rnd *rand.Rand, n int) Bits {
	var sb strings.Builder
	for range n {
		sb.WriteByte(byte('0' + rnd.Intn(2)))
	}
	return Bits(sb.String())
}

// --- Tests -----------------------------------------------------------------

func (env *CodecTestEnviron) TestConcreteScenario() {
	points := carrier(4, 10)
	hidden, ok, err := env.codec4.Hide("1", points, 1)
	env.Require().NoError(err)
	env.True(ok, "expected complete embedding")
	// frame "0001"+"1" → chunks "00", "01", "1"
	expected := []Point{{10, 10}, {10, 11}, {11, 10}, {10, 10}}
	if diff := cmp.Diff(expected, hidden); diff != "" {
		env.T().Errorf("hidden points mismatch (-want +got):\n%s", diff)
	}
	env.Equal(carrier(4, 10), points, "input points must not be modified")
	payload, err := env.codec4.Recover(hidden, 1)
	env.Require().NoError(err)
	env.Equal(Bits("1"), payload)
}

func (env *CodecTestEnviron) TestOverflow() {
	codec8, err := New(WithHeaderWidth(8))
	env.Require().NoError(err)
	points := carrier(9, 1000) // capacity = 9*2 - 8 = 10 bits
	env.Equal(10, codec8.Capacity(len(points), 1))
	payload := Bits(strings.Repeat("1", 100))
	hidden, ok, err := codec8.Hide(payload, points, 1)
	env.Require().NoError(err)
	env.False(ok, "expected overflow to be reported")
	env.Len(hidden, 9)
	// every point carries frame bits: header for 100, then the first 10 payload bits
	frame := "01100100" + strings.Repeat("1", 10)
	for i, p := range hidden {
		env.Equal(Bits(frame[2*i:2*i+2]), Extract(p.X, 1)+Extract(p.Y, 1), "point #%d", i)
	}
	_, err = codec8.Recover(hidden, 1)
	env.True(errors.Is(err, ErrTruncatedCarrier), "expected truncated carrier, got %v", err)
}

func (env *CodecTestEnviron) TestPayloadTooLarge() {
	_, _, err := env.codec4.Hide(Bits(strings.Repeat("0", 16)), carrier(100, 1000), 1)
	env.True(errors.Is(err, ErrPayloadTooLarge), "expected ErrPayloadTooLarge, got %v", err)
	_, ok, err := env.codec4.Hide(Bits(strings.Repeat("0", 15)), carrier(100, 1000), 1)
	env.NoError(err)
	env.True(ok)
}

func (env *CodecTestEnviron) TestInvalidInput() {
	_, _, err := env.codec4.Hide("1", carrier(4, 10), 0)
	env.True(errors.Is(err, ErrInvalidBitBudget))
	_, err = env.codec4.Recover(carrier(4, 10), -1)
	env.True(errors.Is(err, ErrInvalidBitBudget))
	_, _, err = env.codec4.Hide("1a", carrier(4, 10), 1)
	env.True(errors.Is(err, ErrInvalidBits))
	_, _, err = env.codec4.Hide("1", carrier(1, 1000), MaxChange+1)
	env.True(errors.Is(err, ErrInvalidBitBudget), "expected ErrInvalidBitBudget, got %v", err)
	_, _, err = env.codec4.Hide("1", carrier(1, 1000), math.MaxInt/2+1)
	env.True(errors.Is(err, ErrInvalidBitBudget), "expected ErrInvalidBitBudget, got %v", err)
	_, err = env.codec4.Recover(carrier(1, 1000), math.MaxInt)
	env.True(errors.Is(err, ErrInvalidBitBudget), "expected ErrInvalidBitBudget, got %v", err)
	_, err = New(WithHeaderWidth(0))
	env.True(errors.Is(err, ErrHeaderWidth))
	_, err = New(WithHeaderWidth(MaxHeaderWidth + 1))
	env.True(errors.Is(err, ErrHeaderWidth))
}

func (env *CodecTestEnviron) TestStopsAtSmallCoordinate() {
	points := carrier(20, 1000)
	points[2] = Point{X: 1000, Y: 1} // 0b1 cannot host 2 bits
	payload := Bits("1011011101")
	hidden, ok, err := env.codec4.Hide(payload, points, 2)
	env.Require().NoError(err)
	env.False(ok, "expected incomplete embedding")
	for i := 2; i < len(points); i++ {
		env.Equal(points[i], hidden[i], "point #%d must be left unmodified", i)
	}
	env.Equal([]Point{{1002, 1002}, {1002, 1003}}, hidden[:2], "expected first points to be modified")
}

func (env *CodecTestEnviron) TestShortFinalChunk() {
	// 23 header bits + "10" = 25 bits, the 7th point receives a single x bit
	points := carrier(20, 1002)
	hidden, ok, err := Hide("10", points, 2)
	env.Require().NoError(err)
	env.Require().True(ok)
	env.Equal(Point{X: 1000, Y: 1002}, hidden[6], "short half goes to the high end of the window")
	env.Equal(points[7:], hidden[7:], "points after the frame must be left unmodified")
	got, err := Recover(hidden, 2)
	env.Require().NoError(err)
	env.Equal(Bits("10"), got)
	// frames shorter than one chunk per point, ending inside the header
	for _, payload := range []Bits{"", "1", "0"} {
		hidden, ok, err = Hide(payload, carrier(10, 1000), 5)
		env.Require().NoError(err)
		env.Require().True(ok)
		got, err = Recover(hidden, 5)
		env.Require().NoError(err)
		env.Equal(payload, got, "change=5, payload=%q", payload)
	}
}

func (env *CodecTestEnviron) TestRoundTrip() {
	rnd := rand.New(rand.NewSource(4711))
	for change := 1; change <= 5; change++ {
		for _, n := range []int{0, 1, 7, 8, 63, 500} {
			points := randomCarrier(rnd, 1200)
			payload := randomBits(rnd, n)
			env.Require().GreaterOrEqual(Capacity(len(points), change), n)
			hidden, ok, err := Hide(payload, points, change)
			env.Require().NoError(err)
			env.Require().True(ok, "change=%d, n=%d", change, n)
			got, err := Recover(hidden, change)
			env.Require().NoError(err)
			env.Equal(payload, got, "change=%d, n=%d", change, n)
		}
	}
}

func (env *CodecTestEnviron) TestRoundTripAtFullCapacity() {
	rnd := rand.New(rand.NewSource(42))
	points := randomCarrier(rnd, 50)
	for change := 1; change <= 3; change++ {
		capacity := Capacity(len(points), change)
		payload := randomBits(rnd, capacity)
		hidden, ok, err := Hide(payload, points, change)
		env.Require().NoError(err)
		env.Require().True(ok)
		got, err := Recover(hidden, change)
		env.Require().NoError(err)
		env.Equal(payload, got)
		// one more bit does not fit
		_, ok, err = Hide(payload+"1", points, change)
		env.Require().NoError(err)
		env.False(ok, "change=%d: expected overflow at capacity+1", change)
	}
}

func (env *CodecTestEnviron) TestRecoverIsIdempotent() {
	rnd := rand.New(rand.NewSource(7))
	points := randomCarrier(rnd, 300)
	hidden, ok, err := Hide(randomBits(rnd, 200), points, 2)
	env.Require().NoError(err)
	env.Require().True(ok)
	snapshot := append([]Point(nil), hidden...)
	first, err := Recover(hidden, 2)
	env.Require().NoError(err)
	second, err := Recover(hidden, 2)
	env.Require().NoError(err)
	env.Equal(first, second)
	env.Equal(snapshot, hidden, "Recover must not modify the carrier")
}

func (env *CodecTestEnviron) TestTruncationDetection() {
	for change := 1; change <= 4; change++ {
		tooShort := (DefaultHeaderWidth - 1) / (2 * change) // cannot hold the header
		_, err := Recover(carrier(tooShort, 1000), change)
		env.True(errors.Is(err, ErrTruncatedCarrier), "change=%d: expected ErrTruncatedCarrier, got %v", change, err)
	}
	// header announces more bits than available
	hidden, ok, err := env.codec4.Hide("111111", carrier(10, 1000), 1)
	env.Require().NoError(err)
	env.Require().True(ok)
	_, err = env.codec4.Recover(hidden[:4], 1)
	env.True(errors.Is(err, ErrTruncatedCarrier), "expected ErrTruncatedCarrier, got %v", err)
}

func (env *CodecTestEnviron) TestMismatchedBudgetIsNotDetected() {
	rnd := rand.New(rand.NewSource(99))
	points := randomCarrier(rnd, 2000)
	hidden, ok, err := Hide(randomBits(rnd, 64), points, 3)
	env.Require().NoError(err)
	env.Require().True(ok)
	got, err := Recover(hidden, 1)
	if err == nil { // garbage, but deterministic
		again, _ := Recover(hidden, 1)
		env.Equal(got, again)
	} else {
		env.True(errors.Is(err, ErrTruncatedCarrier))
	}
}

func TestCapacityMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	if c := Capacity(0, 1); c != -DefaultHeaderWidth {
		t.Errorf("expected capacity of empty carrier to be %d, is %d", -DefaultHeaderWidth, c)
	}
	if c := Capacity(100, 2); c != 400-23 {
		t.Errorf("expected capacity 377, is %d", c)
	}
	for n := 0; n < 200; n++ {
		for change := 1; change < 8; change++ {
			c := Capacity(n, change)
			if Capacity(n+1, change) < c {
				t.Fatalf("capacity decreasing in point count at n=%d, change=%d", n, change)
			}
			if Capacity(n, change+1) < c {
				t.Fatalf("capacity decreasing in bit budget at n=%d, change=%d", n, change)
			}
		}
	}
}

func TestWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	for _, tc := range []struct {
		v      int
		half   Bits
		change int
		want   Bits
	}{
		{1002, "0", 2, "00"},   // 0b1111101010
		{1002, "1", 4, "1010"}, // keeps low bits "010"
		{-1002, "01", 4, "0110"},
		{1002, "", 4, ""},
		{1002, "101", 3, "101"},
		{1002, "1", 1, "1"},
	} {
		if got := window(tc.v, tc.half, tc.change); got != tc.want {
			t.Errorf("window(%d, %q, %d) = %q, want %q", tc.v, tc.half, tc.change, got, tc.want)
		}
	}
}

func TestParseBits(t *testing.T) {
	b, err := ParseBits("0100 1000\n0110 1001")
	if err != nil {
		t.Fatal(err)
	}
	if b != "0100100001101001" {
		t.Errorf("unexpected bits %q", b)
	}
	if _, err = ParseBits("0102"); !errors.Is(err, ErrInvalidBits) {
		t.Errorf("expected ErrInvalidBits, got %v", err)
	}
}

func TestBitsBytes(t *testing.T) {
	b := BitsFromBytes([]byte("Hi"))
	if b != "0100100001101001" {
		t.Errorf("unexpected bits for 'Hi': %q", b)
	}
	p, err := b.Bytes()
	if err != nil || string(p) != "Hi" {
		t.Errorf("expected 'Hi', got %q (%v)", p, err)
	}
	if _, err = Bits("0101").Bytes(); !errors.Is(err, ErrInvalidBits) {
		t.Errorf("expected error for odd bit count, got %v", err)
	}
}
