package lsb

import "errors"

// Errors returned by the codec. They are usually wrapped with additional
// context, clients should test for them with errors.Is.
var (
	// ErrPayloadTooLarge is returned if a payload's bit-length does not fit
	// into the length header.
	ErrPayloadTooLarge = errors.New("payload too large for length header")

	// ErrTruncatedCarrier is returned if a carrier has fewer points than the
	// frame requires.
	ErrTruncatedCarrier = errors.New("carrier truncated")

	// ErrCoordinateTooSmall is returned by Embed if a coordinate has fewer
	// binary digits than bits to write. Hide never returns it, but stops
	// and reports an incomplete embedding instead.
	ErrCoordinateTooSmall = errors.New("coordinate too small to host bits")

	ErrInvalidBitBudget = errors.New("bits per coordinate out of range")
	ErrInvalidBits      = errors.New("bit string may only contain '0' and '1'")
	ErrHeaderWidth      = errors.New("header width out of range")
)
