package lsb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// magnitude splits v into its sign and its binary digits, without leading
// zeros. Zero has the single digit "0".
func magnitude(v int) (negative bool, digits string) {
	if v < 0 {
		// -v overflows for math.MinInt, but the conversion to uint64 still
		// yields the correct magnitude
		return true, strconv.FormatUint(uint64(-int64(v)), 2)
	}
	return false, strconv.FormatUint(uint64(v), 2)
}

// Embed overwrites the least significant len(bits) binary digits of the
// magnitude of value with bits. Sign and higher order digits are left
// untouched, i.e. -0b1010 with bits "01" becomes -0b1001.
//
// If value has fewer binary digits than len(bits), Embed fails with
// ErrCoordinateTooSmall. An empty bit string leaves value unchanged.
func Embed(value int, bits Bits) (int, error) {
	if len(bits) == 0 {
		return value, nil
	}
	if i := bits.firstInvalid(); i >= 0 {
		return value, fmt.Errorf("%w: symbol %q at position %d", ErrInvalidBits, bits[i], i)
	}
	neg, digits := magnitude(value)
	if len(digits) < len(bits) {
		return value, fmt.Errorf("%w: %d has %d binary digits, cannot write %d bits",
			ErrCoordinateTooSmall, value, len(digits), len(bits))
	}
	digits = digits[:len(digits)-len(bits)] + string(bits)
	m, err := strconv.ParseUint(digits, 2, 64)
	if err != nil { // cannot happen for valid bits, digit count is unchanged
		return value, err
	}
	if !neg {
		if m > math.MaxInt {
			return value, fmt.Errorf("embedding %q into %d overflows int", bits, value)
		}
		return int(m), nil
	}
	switch {
	case m <= math.MaxInt:
		return -int(m), nil
	case m == math.MaxInt+1:
		return math.MinInt, nil
	}
	return value, fmt.Errorf("embedding %q into %d overflows int", bits, value)
}

// Extract reads the k least significant binary digits of the magnitude of
// value. Magnitudes with fewer than k digits are zero-padded on the left,
// thus Extract never fails. The sign of value is ignored.
func Extract(value int, k int) Bits {
	if k <= 0 {
		return ""
	}
	_, digits := magnitude(value)
	if len(digits) < k+1 {
		digits = strings.Repeat("0", k+1-len(digits)) + digits
	}
	return Bits(digits[len(digits)-k:])
}
