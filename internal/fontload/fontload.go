/*
Package fontload loads TrueType font files for rendering and naming.

Carrier fonts have to be TrueType fonts with file extension ".ttf". Other
font formats, including OpenType fonts with CFF outlines, are rejected by
file name before any parsing happens.
*/
package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'glyphsteg.fontload'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.fontload")
}

// ErrUnsupportedFileType is returned for font files without extension ".ttf".
var ErrUnsupportedFileType = errors.New("unsupported font file type, expecting .ttf")

// ScalableFont is a parsed TrueType font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font // not safe for concurrent use
}

// CheckFileType checks that path names a TrueType font file.
func CheckFileType(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".ttf") {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
	}
	return nil
}

// LoadTrueTypeFont loads a TrueType font from a file.
func LoadTrueTypeFont(fontfile string) (*ScalableFont, error) {
	if err := CheckFileType(fontfile); err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseTrueTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseTrueTypeFont parses a TrueType font from memory.
func ParseTrueTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}
