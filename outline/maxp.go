package outline

import (
	"encoding/binary"
	"fmt"
)

// MaxPTableInfo is a typed view over table 'maxp'.
// For version 1.0 tables, the TrueType profile limits for outlines are
// decoded as well.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	HasExtendedProfile bool
	MaxPoints          uint16
	MaxContours        uint16
}

const maxpMinSize = 6
const maxpV10Size = 32

func decodeMaxP(b []byte) (MaxPTableInfo, error) {
	var info MaxPTableInfo
	if len(b) < maxpMinSize {
		return info, fmt.Errorf("table too short: %d bytes", len(b))
	}
	info.VersionFixed = binary.BigEndian.Uint32(b[0:4])
	info.NumGlyphs = binary.BigEndian.Uint16(b[4:6])
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, nil
	}
	info.HasExtendedProfile = true
	info.MaxPoints = binary.BigEndian.Uint16(b[6:8])
	info.MaxContours = binary.BigEndian.Uint16(b[8:10])
	return info, nil
}
