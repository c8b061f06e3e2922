package aesgo

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/mario-areias/aes-ecb/key"
)

const (
	keyBlock = 4  // 4 bytes or 32 bits
	nk       = 4  // key length in words
	rounds   = 10 // Nr for a 128 bit key

	scheduleWords = keyBlock * (rounds + 1)
)

// Schedule holds the expanded key: one word per state column,
// four words per round key. It is never modified after ExpandKey
// returns, so a single Schedule can be shared by concurrent decryptions.
type Schedule [scheduleWords]uint32

// rconTable[0] is unused; rconTable[r] is x^(r-1) in the top byte.
var rconTable = buildRcon()

func buildRcon() [rounds + 1]uint32 {
	var table [rounds + 1]uint32
	var acc byte = 1
	for i := 1; i <= rounds; i++ {
		table[i] = uint32(acc) << 24
		acc = gmul(acc, 2)
	}
	return table
}

// ExpandKey runs the Rijndael key expansion over a 16 byte key.
func ExpandKey(k []byte) (*Schedule, error) {
	if len(k) != key.Size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(k), key.Size)
	}

	var w Schedule
	for i := 0; i < nk; i++ {
		w[i] = binary.BigEndian.Uint32(k[4*i:])
	}

	for i := nk; i < scheduleWords; i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotWord(temp)) ^ rconTable[i/nk]
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}

	return &w, nil
}

func rotWord(w uint32) uint32 {
	return bits.RotateLeft32(w, 8)
}

// roundKey returns words [4r, 4r+4) laid out like the state:
// word j is column j, its most significant byte in row 0.
func (w *Schedule) roundKey(r int) [4][4]byte {
	var m [4][4]byte
	for c := 0; c < 4; c++ {
		word := w[keyBlock*r+c]
		m[0][c] = byte(word >> 24)
		m[1][c] = byte(word >> 16)
		m[2][c] = byte(word >> 8)
		m[3][c] = byte(word)
	}
	return m
}
