package aesgo

import (
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/mario-areias/aes-ecb/key"
)

// ecb represents a generic ECB block mode.
type ecb struct{ cipher.Block }

// cryptBlocks applies crypt to every block of src in turn.
func (x ecb) cryptBlocks(dst, src []byte, crypt func([]byte, []byte)) {
	n := x.BlockSize()
	if len(src)%n != 0 {
		panic("aesgo: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("aesgo: output smaller than input")
	}
	for len(src) > 0 {
		crypt(dst[:n], src[:n])
		dst = dst[n:]
		src = src[n:]
	}
}

// ecbDecrypter represents an ECB decryption block mode.
type ecbDecrypter struct{ ecb }

// NewECBDecrypter returns a block mode that decrypts each block independently.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return ecbDecrypter{ecb{b}}
}

func (x ecbDecrypter) CryptBlocks(dst, src []byte) {
	x.cryptBlocks(dst, src, x.Decrypt)
}

// DecryptECB decrypts ciphertext under a 16 byte key in ECB mode.
// The output has the same length as the input and keeps any padding;
// stripping it is left to the caller.
func DecryptECB(k, ciphertext []byte) ([]byte, error) {
	a, err := newECB(k, ciphertext)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	NewECBDecrypter(a).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}

// DecryptECBParallel is DecryptECB with the blocks split across up to
// workers goroutines. Each goroutine owns a contiguous run of blocks,
// and the key schedule is shared read-only between them.
func DecryptECBParallel(k, ciphertext []byte, workers int) ([]byte, error) {
	a, err := newECB(k, ciphertext)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))

	blocks := len(ciphertext) / BlockSize
	if workers > blocks {
		workers = blocks
	}
	if workers <= 1 {
		NewECBDecrypter(a).CryptBlocks(plaintext, ciphertext)
		return plaintext, nil
	}

	per := (blocks + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < blocks; start += per {
		end := start + per
		if end > blocks {
			end = blocks
		}
		lo, hi := start*BlockSize, end*BlockSize
		wg.Add(1)
		go func(dst, src []byte) {
			defer wg.Done()
			NewECBDecrypter(a).CryptBlocks(dst, src)
		}(plaintext[lo:hi], ciphertext[lo:hi])
	}
	wg.Wait()

	return plaintext, nil
}

// newECB validates both inputs before any round work is done.
func newECB(k, ciphertext []byte) (AES, error) {
	if len(k) != key.Size {
		return AES{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(k), key.Size)
	}
	if len(ciphertext)%BlockSize != 0 {
		return AES{}, fmt.Errorf("%w: got %d bytes", ErrInvalidBlockLength, len(ciphertext))
	}
	return newAES(k)
}
