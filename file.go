package glyphsteg

import (
	"fmt"
	"os"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/glyphsteg/outline"
)

// HideInFile hides payload in TrueType font src and writes the carrier to
// dst. Both have to be ".ttf" files. Nothing is written if the payload does
// not fit (ErrIncomplete).
func HideInFile(src, dst string, payload lsb.Bits, change int, opts ...lsb.Option) error {
	if err := fontload.CheckFileType(dst); err != nil {
		return err
	}
	c, err := loadContainer(src)
	if err != nil {
		return err
	}
	data, err := HideIn(c, payload, change, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("cannot write carrier: %w", err)
	}
	tracer().Debugf("wrote carrier %s, %d bytes", dst, len(data))
	return nil
}

// RecoverFromFile recovers a payload from TrueType font file path.
func RecoverFromFile(path string, change int, opts ...lsb.Option) (lsb.Bits, error) {
	c, err := loadContainer(path)
	if err != nil {
		return "", err
	}
	return RecoverFrom(c, change, opts...)
}

func loadContainer(path string) (FontContainer, error) {
	if err := fontload.CheckFileType(path); err != nil {
		return FontContainer{}, err
	}
	f, err := outline.Load(path)
	if err != nil {
		return FontContainer{}, err
	}
	return FontContainer{Font: f}, nil
}
