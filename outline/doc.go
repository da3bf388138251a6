/*
Package outline is the font-model provider for glyph steganography.
It opens TrueType fonts, exposes the coordinates of all outline points as an
ordered sequence, and rebuilds a font file from a modified sequence.

Only fonts with TrueType outlines (tables 'glyf' and 'loca') are supported.
Fonts with CFF outlines, font collections and variable fonts are rejected.

# Point Order

Points are enumerated by glyph index, then by contour, then by point within
a contour. Only simple glyphs contribute points; composite glyphs and empty
glyphs are skipped. The order is stable: parsing a font rebuilt from its own
points yields the same sequence again, which is what package `lsb` relies on
when recovering a payload.

# Rebuilding

Rebuilding re-encodes every glyph whose points have changed, including its
bounding box, and keeps the binary data of all other glyphs untouched.
The 'loca' table is regenerated, switching to the long format only if
glyph data outgrows the short one. Table checksums and the font checksum
adjustment in table 'head' are recomputed. All tables other than 'glyf',
'loca' and 'head' are copied verbatim.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphsteg.outline'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.outline")
}
