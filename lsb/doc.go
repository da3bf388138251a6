/*
Package lsb hides bit strings in the least significant bits of a sequence
of signed integer coordinates, and recovers them again.

The carrier is a plain slice of points, as extracted from the outlines of a
TrueType font (see package `outline`). Package lsb never looks at font
data; it works on values passed in and returns new values.

# Frame Format

A payload is written as a frame: a fixed-width length header, holding the
payload's bit-length as an unsigned binary numeral, immediately followed by
the payload bits. The header width defaults to 23 bits, which limits a
payload to 2^23-1 bits. Header width is not stored in the carrier, so
hiding and recovering have to agree on it.

The frame is cut into chunks of 2×change bits. Each chunk goes to the next
point of the carrier: the first `change` bits replace the low bits of x,
the remaining bits replace the low bits of y. The last chunk may be short,
in which case y receives fewer bits (or none). A half shorter than change
is written to the high end of the coordinate's change-bit window, since a
reader always extracts full windows; the low end keeps its current bits.

# Sign Handling

Coordinates are treated in their textual binary form, i.e. "0b1011" for 11
and "-0b1011" for -11. Bits are written to and read from the trailing digits
of the magnitude; the sign is never touched. Writing and reading are not
symmetric: writing k bits to a value with fewer than k binary digits fails
(ErrCoordinateTooSmall), whereas reading always succeeds by zero-padding
the digits. Hide handles a failing write by stopping early and reporting
an incomplete embedding.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package lsb

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphsteg.lsb'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.lsb")
}
