/*
Package payload converts secrets to and from bit strings.

Bytes are converted most significant bit first. Text is encoded with an IANA
character set name (default UTF-8) before conversion, so a secret may be
hidden compactly as, e.g., ISO-8859-15.
*/
package payload

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// tracer traces with key 'glyphsteg.payload'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.payload")
}

// DefaultEncoding is the character set used for text if none is given.
const DefaultEncoding = "UTF-8"

// ErrUnknownEncoding is returned for character set names not known to
// the IANA index, or not supported by golang.org/x/text.
var ErrUnknownEncoding = errors.New("unknown character encoding")

// FromBytes converts octets to bits.
func FromBytes(b []byte) lsb.Bits {
	return lsb.BitsFromBytes(b)
}

// ToBytes converts bits to octets. The number of bits has to be a multiple
// of 8.
func ToBytes(bits lsb.Bits) ([]byte, error) {
	return bits.Bytes()
}

// FromText encodes text with character set charset and converts the
// result to bits. An empty charset selects DefaultEncoding.
func FromText(text string, charset string) (lsb.Bits, error) {
	enc, err := lookup(charset)
	if err != nil {
		return "", err
	}
	b, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", fmt.Errorf("cannot encode text as %s: %w", charsetName(charset), err)
	}
	tracer().Debugf("encoded %d runes as %d bytes of %s", len([]rune(text)), len(b), charsetName(charset))
	return lsb.BitsFromBytes(b), nil
}

// ToText converts bits to octets and decodes them with character set
// charset. An empty charset selects DefaultEncoding.
func ToText(bits lsb.Bits, charset string) (string, error) {
	enc, err := lookup(charset)
	if err != nil {
		return "", err
	}
	b, err := bits.Bytes()
	if err != nil {
		return "", err
	}
	text, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("cannot decode text as %s: %w", charsetName(charset), err)
	}
	return string(text), nil
}

// FromFile reads a file and converts its contents to bits.
func FromFile(path string) (lsb.Bits, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return lsb.BitsFromBytes(b), nil
}

// ToFile writes bits, converted to octets, to a file.
func ToFile(path string, bits lsb.Bits) error {
	b, err := bits.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Hex formats bits as hexadecimal octets. Trailing bits not filling an octet
// are appended in binary.
func Hex(bits lsb.Bits) string {
	var sb strings.Builder
	n := bits.Len() / 8 * 8
	b, _ := bits[:n].Bytes()
	for i, octet := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", octet)
	}
	if n < bits.Len() {
		if n > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("0b" + string(bits[n:]))
	}
	return sb.String()
}

func charsetName(charset string) string {
	if charset == "" {
		return DefaultEncoding
	}
	return charset
}

func lookup(charset string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(charsetName(charset))
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, charset)
	}
	return enc, nil
}
