package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/npillmayer/glyphsteg/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// distort moves the first n outline points of a font far to the right.
func distort(t *testing.T, data []byte, n int) []byte {
	t.Helper()
	f, err := outline.Parse(data)
	require.NoError(t, err)
	points := f.Points()
	for i := 0; i < n; i++ {
		points[i].X += 300
	}
	out, err := f.Rebuild(points)
	require.NoError(t, err)
	return out
}

func TestCompareIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.raster")
	defer teardown()
	//
	report, err := Compare(goregular.TTF, goregular.TTF, 24)
	require.NoError(t, err)
	assert.Greater(t, report.Glyphs, 0)
	assert.Equal(t, 0, report.Differing)
	assert.Equal(t, uint8(0), report.MaxDiff)
	assert.Equal(t, -1, report.Worst)
}

func TestCompareDistorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.raster")
	defer teardown()
	//
	stego := distort(t, goregular.TTF, 4)
	report, err := Compare(goregular.TTF, stego, 24)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Differing, 1)
	assert.Greater(t, report.MaxDiff, uint8(0))
	assert.GreaterOrEqual(t, report.Worst, 0)
	assert.Greater(t, report.Pixels, 0)
}

func TestCompareInvalid(t *testing.T) {
	_, err := Compare(goregular.TTF, goregular.TTF, 0)
	assert.Error(t, err)
	_, err = Compare(goregular.TTF, []byte("no font"), 12)
	assert.Error(t, err)
}

func TestRenderPair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.raster")
	defer teardown()
	//
	stego := distort(t, goregular.TTF, 4)
	var buf bytes.Buffer
	require.NoError(t, RenderPair(&buf, goregular.TTF, stego, 0, 48))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), b.Dy(), "expected two glyphs side by side")
	assert.Error(t, RenderPair(&buf, goregular.TTF, stego, 1<<20, 48))
}
