package lsb

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmbedKeepsSignAndHighBits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	cases := []struct {
		value int
		bits  Bits
		want  int
	}{
		{10, "0", 10},      // 0b1010
		{10, "1", 11},      // 0b1011
		{10, "01", 9},      // 0b1001
		{10, "1111", 15},   // 0b1111
		{-10, "01", -9},    // -0b1001
		{-10, "1", -11},    // -0b1011
		{-1, "0", 0},       // -0b0, sign collapses with magnitude
		{0, "1", 1},        // 0b0 has one digit
		{255, "000", 248},  // 0b11111000
		{-256, "11", -259}, // -0b100000011
		{1234, "", 1234},   // nothing to write
	}
	for _, c := range cases {
		got, err := Embed(c.value, c.bits)
		if err != nil {
			t.Errorf("Embed(%d, %q): unexpected error %v", c.value, c.bits, err)
			continue
		}
		if got != c.want {
			t.Errorf("Embed(%d, %q) = %d, expected %d", c.value, c.bits, got, c.want)
		}
	}
}

func TestEmbedFailsForSmallMagnitudes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	cases := []struct {
		value int
		bits  Bits
	}{
		{0, "00"},
		{1, "10"},
		{3, "101"},
		{-2, "011"},
		{10, "10101"},
	}
	for _, c := range cases {
		got, err := Embed(c.value, c.bits)
		if !errors.Is(err, ErrCoordinateTooSmall) {
			t.Errorf("Embed(%d, %q): expected ErrCoordinateTooSmall, got %v", c.value, c.bits, err)
		}
		if got != c.value {
			t.Errorf("Embed(%d, %q): expected value to be returned unchanged, got %d", c.value, c.bits, got)
		}
	}
}

func TestEmbedRejectsNonBits(t *testing.T) {
	if _, err := Embed(100, "0x1"); !errors.Is(err, ErrInvalidBits) {
		t.Errorf("expected ErrInvalidBits, got %v", err)
	}
}

func TestEmbedExtremes(t *testing.T) {
	got, err := Embed(math.MinInt, "0")
	if err != nil || got != math.MinInt {
		t.Errorf("Embed(MinInt, \"0\") = %d, %v; expected MinInt", got, err)
	}
	if _, err = Embed(math.MinInt, "1"); err == nil {
		t.Errorf("expected overflow error for Embed(MinInt, \"1\")")
	}
	got, err = Embed(math.MaxInt, "0")
	if err != nil || got != math.MaxInt-1 {
		t.Errorf("Embed(MaxInt, \"0\") = %d, %v; expected MaxInt-1", got, err)
	}
}

func TestExtractNeverFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	cases := []struct {
		value int
		k     int
		want  Bits
	}{
		{10, 1, "0"},
		{11, 2, "11"},
		{-11, 2, "11"},
		{0, 3, "000"},
		{1, 4, "0001"},
		{-1, 4, "0001"},
		{1234, 0, ""},
		{math.MinInt, 2, "00"},
	}
	for _, c := range cases {
		if got := Extract(c.value, c.k); got != c.want {
			t.Errorf("Extract(%d, %d) = %q, expected %q", c.value, c.k, got, c.want)
		}
	}
}

func TestExtractReadsWhatEmbedWrote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.lsb")
	defer teardown()
	//
	for _, v := range []int{1, 2, 7, 10, 100, 511, 1000, 2047, 32767, -5, -100, -1024} {
		_, digits := magnitude(v)
		for k := 1; k <= len(digits); k++ {
			for _, pattern := range []string{"0", "1", "01", "10"} {
				bits := Bits(strings.Repeat(pattern, k)[:k])
				w, err := Embed(v, bits)
				if err != nil {
					t.Fatalf("Embed(%d, %q) failed: %v", v, bits, err)
				}
				if got := Extract(w, k); got != bits {
					t.Errorf("Extract(Embed(%d, %q), %d) = %q", v, bits, k, got)
				}
				if (w < 0) != (v < 0) && w != 0 {
					t.Errorf("Embed(%d, %q) = %d changed the sign", v, bits, w)
				}
			}
		}
	}
}
