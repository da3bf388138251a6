package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestMeasureCapacities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.tools")
	defer teardown()
	//
	dir := t.TempDir()
	regular, bold := filepath.Join(dir, "regular.ttf"), filepath.Join(dir, "bold.ttf")
	require.NoError(t, os.WriteFile(regular, goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(bold, gobold.TTF, 0o644))
	codec, err := lsb.New()
	require.NoError(t, err)
	results, err := measureCapacities(context.Background(), codec, []string{regular, bold}, []int{1, 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, path := range []string{regular, bold} {
		r := results[i]
		assert.Equal(t, path, r.path)
		assert.Greater(t, r.points, 0)
		assert.Equal(t, []int{2*r.points - 23, 4*r.points - 23}, r.capacity)
		assert.LessOrEqual(t, r.smallest, r.points)
	}

	_, err = measureCapacities(context.Background(), codec, []string{regular, filepath.Join(dir, "x.otf")}, []int{1})
	assert.ErrorIs(t, err, fontload.ErrUnsupportedFileType)
	_, err = measureCapacities(context.Background(), codec, []string{filepath.Join(dir, "missing.ttf")}, []int{1})
	assert.Error(t, err)
}

func TestFormatPayload(t *testing.T) {
	bits := lsb.BitsFromBytes([]byte("Go"))
	s, err := formatPayload(bits, "text", "")
	require.NoError(t, err)
	assert.Equal(t, "Go", s)
	s, err = formatPayload(bits, "HEX", "")
	require.NoError(t, err)
	assert.Equal(t, "47 6f", s)
	s, err = formatPayload(bits, "bits", "")
	require.NoError(t, err)
	assert.Equal(t, "0100011101101111", s)
	_, err = formatPayload(bits, "yaml", "")
	assert.Error(t, err)
}

func TestFormatCapacity(t *testing.T) {
	assert.Equal(t, "none", formatCapacity(-3))
	assert.Equal(t, "17 bits (2 bytes)", formatCapacity(17))
}
