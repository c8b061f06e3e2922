// Package codec turns textual or compressed key and ciphertext material
// into the raw bytes the cipher consumes.
package codec

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Format is the text encoding of an input.
type Format int

const (
	Base64 Format = iota
	Hex
	Raw
)

var formatNames = []string{"base64", "hex", "raw"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	i := slices.Index(formatNames, strings.ToLower(name))
	if i < 0 {
		return 0, fmt.Errorf("unknown input format %q (want one of %s)", name, strings.Join(formatNames, ", "))
	}
	return Format(i), nil
}

// Decode reads all of r and decodes it. Line breaks and surrounding
// whitespace are ignored for the text formats.
func Decode(f Format, r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(f, buf)
}

// DecodeLines decodes every non-empty line of r as a separate payload.
func DecodeLines(f Format, r io.Reader) ([][]byte, error) {
	var out [][]byte
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16<<20)
	line := 0
	for s.Scan() {
		line++
		if len(bytes.TrimSpace(s.Bytes())) == 0 {
			continue
		}
		// the scanner reuses its buffer
		b, err := decode(f, slices.Clone(s.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeKey parses a hex encoded key. Length is checked by the cipher.
func DecodeKey(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}
	return b, nil
}

func decode(f Format, buf []byte) ([]byte, error) {
	switch f {
	case Raw:
		return buf, nil
	case Base64:
		text := stripSpace(buf)
		out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
		n, err := base64.StdEncoding.Decode(out, text)
		if err != nil {
			return nil, fmt.Errorf("decoding base64: %w", err)
		}
		return out[:n], nil
	case Hex:
		text := stripSpace(buf)
		out := make([]byte, hex.DecodedLen(len(text)))
		n, err := hex.Decode(out, text)
		if err != nil {
			return nil, fmt.Errorf("decoding hex: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("unknown input format %s", f)
	}
}

// stripSpace drops ASCII whitespace, including line breaks.
func stripSpace(buf []byte) []byte {
	out := make([]byte, 0, len(buf))
	for _, c := range buf {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		out = append(out, c)
	}
	return out
}
