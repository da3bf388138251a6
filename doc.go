/*
Package glyphsteg hides data in the outlines of TrueType fonts.

A payload, given as a string of bits, is written into the least significant
bits of the coordinates of glyph outline points. The carrier remains an
ordinary font file; with a small bit budget the changes to glyph shapes are
not visible at usual sizes.

The work is split between three packages:

▪︎ Package lsb is the codec. It frames a payload with a length header and
spreads it over a sequence of points, change bits per coordinate.

▪︎ Package outline is the font model. It extracts the points of a TrueType
font in a stable order and rebuilds a font file from modified points.

▪︎ This package connects both through interface Container, and adds
convenience functions operating on font files.

A typical round trip looks like this:

	err := glyphsteg.HideInFile("Go-Regular.ttf", "carrier.ttf", lsb.BitsFromBytes(secret), 2)
	…
	bits, err := glyphsteg.RecoverFromFile("carrier.ttf", 2)

Hiding and recovering have to use the same bit budget and the same header
width; neither is stored in the carrier. There is no encryption, compression
or error correction. Any tool re-writing the font, e.g. for subsetting or
re-hinting, will destroy the payload.

# Status

Only TrueType outlines are supported. Fonts with CFF outlines, collections
(*.ttc) and variable fonts are out of scope.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphsteg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphsteg'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg")
}
