package key

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Size is the only key length supported: 128 bits.
const Size = 16

// ErrInvalidSize is returned for key material that is not exactly Size bytes.
var ErrInvalidSize = errors.New("invalid key size")

type Key interface {
	GetBytes() []byte
	Len() int
}

type key128 struct {
	material [Size]byte
}

func (k *key128) GetBytes() []byte {
	return k.material[:]
}

func (k *key128) Len() int {
	return len(k.material)
}

// Bit128 returns a random 128-bit key.
func Bit128() Key {
	b := generateRandomBytes(Size)
	return &key128{material: [Size]byte(b)}
}

func NewKey(material [Size]byte) Key {
	return &key128{material: material}
}

// Parse copies b into a new key. The caller keeps ownership of b.
func Parse(b []byte) (Key, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSize, len(b), Size)
	}
	return &key128{material: [Size]byte(b)}, nil
}

func generateRandomBytes(n int) []byte {
	randBytes := make([]byte, n)

	i, err := rand.Read(randBytes)
	if i != n || err != nil {
		panic("Could not generate random bytes")
	}

	return randBytes
}
