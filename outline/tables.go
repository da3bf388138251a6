package outline

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-text/typesetting/font/opentype"
	"seehuhn.de/go/sfnt/header"
)

// TableInfo describes one table of a font file.
type TableInfo struct {
	Tag    string
	Offset uint32
	Size   int
}

// Tables lists the tables of a font file, sorted by tag. Tags are taken from
// the table directory, contents are fetched through the go-text font loader.
// Tables does not require TrueType outlines.
func Tables(data []byte) ([]TableInfo, error) {
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		return nil, err
	}
	ld, err := opentype.NewLoader(r)
	if err != nil {
		return nil, fmt.Errorf("go-text/opentype: %w", err)
	}
	infos := make([]TableInfo, 0, len(info.Toc))
	for tag, rec := range info.Toc {
		if len(tag) != 4 {
			continue
		}
		raw, err := ld.RawTable(opentype.MustNewTag(tag))
		if err != nil {
			tracer().Debugf("table %q not readable: %v", tag, err)
			continue
		}
		infos = append(infos, TableInfo{Tag: tag, Offset: rec.Offset, Size: len(raw)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Tag < infos[j].Tag })
	return infos, nil
}
