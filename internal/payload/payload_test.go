package payload

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.payload")
	defer teardown()
	//
	bits, err := FromText("A€", "")
	require.NoError(t, err)
	assert.Equal(t, 4*8, bits.Len(), "€ takes 3 bytes in UTF-8")
	text, err := ToText(bits, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "A€", text)

	bits, err = FromText("A€", "ISO-8859-15")
	require.NoError(t, err)
	assert.Equal(t, lsb.Bits("0100000110100100"), bits)
	text, err = ToText(bits, "ISO-8859-15")
	require.NoError(t, err)
	assert.Equal(t, "A€", text)
}

func TestUnknownEncoding(t *testing.T) {
	_, err := FromText("x", "no-such-charset")
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
	_, err = ToText("01111000", "no-such-charset")
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestTextNotRepresentable(t *testing.T) {
	_, err := FromText("日本", "ISO-8859-1")
	assert.Error(t, err)
}

func TestBytesAndFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphsteg.payload")
	defer teardown()
	//
	secret := []byte{0x00, 0x7f, 0xff}
	bits := FromBytes(secret)
	assert.Equal(t, lsb.Bits("000000000111111111111111"), bits)
	b, err := ToBytes(bits)
	require.NoError(t, err)
	assert.Equal(t, secret, b)
	_, err = ToBytes(bits[:7])
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "secret.bin")
	require.NoError(t, ToFile(path, bits))
	fromFile, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, bits, fromFile)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "ca fe", Hex("1100101011111110"))
	assert.Equal(t, "ca 0b101", Hex("11001010101"))
	assert.Equal(t, "0b1", Hex("1"))
	assert.Equal(t, "", Hex(""))
}
