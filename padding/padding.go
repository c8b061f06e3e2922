// Package padding adds and removes PKCS#7 padding. The cipher never
// does this itself; callers that know the plaintext was padded unpad
// the decrypted output here.
package padding

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrInvalidPadding = errors.New("invalid padding")

// Pad returns a copy of buf with PKCS#7 padding added.
func Pad(buf []byte, blockSize int) []byte {
	if blockSize <= 0 || blockSize > 0xff {
		panic("padding: invalid block size")
	}
	n := blockSize - len(buf)%blockSize

	out := make([]byte, len(buf), len(buf)+n)
	copy(out, buf)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad returns buf without its PKCS#7 padding. The result aliases buf.
func Unpad(buf []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 || len(buf) == 0 || len(buf)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrInvalidPadding, len(buf), blockSize)
	}

	b := buf[len(buf)-1]
	n := int(b)
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad byte %#02x", ErrInvalidPadding, b)
	}
	for _, c := range buf[len(buf)-n:] {
		if c != b {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", ErrInvalidPadding)
		}
	}
	return buf[:len(buf)-n], nil
}
