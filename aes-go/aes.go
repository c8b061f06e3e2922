// Package aesgo implements AES-128 from the field arithmetic up: the
// S-box, the key schedule, the inverse cipher and an ECB decryption
// driver. A forward block transform is kept for validating the inverse.
package aesgo

import (
	"github.com/mario-areias/aes-ecb/key"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// AES is a 128 bit AES block cipher bound to one expanded key.
// It satisfies crypto/cipher.Block and is safe for concurrent use.
type AES struct {
	schedule *Schedule
	rounds   int
}

// NewAES expands k and returns a cipher for it.
func NewAES(k key.Key) (AES, error) {
	return newAES(k.GetBytes())
}

func newAES(k []byte) (AES, error) {
	w, err := ExpandKey(k)
	if err != nil {
		return AES{}, err
	}
	return AES{schedule: w, rounds: rounds}, nil
}

// Schedule returns a copy of the expanded key.
func (a AES) Schedule() Schedule {
	return *a.schedule
}

func (a AES) BlockSize() int { return BlockSize }

// Decrypt decrypts the first block of src into dst.
// dst and src may overlap entirely.
func (a AES) Decrypt(dst, src []byte) {
	checkBlock(dst, src)
	out := a.decryptBlock([BlockSize]byte(src[:BlockSize]))
	copy(dst, out[:])
}

// Encrypt encrypts the first block of src into dst. It exists so the
// inverse cipher can be checked against its forward counterpart.
func (a AES) Encrypt(dst, src []byte) {
	checkBlock(dst, src)
	out := a.encryptBlock([BlockSize]byte(src[:BlockSize]))
	copy(dst, out[:])
}

// DecryptBlock returns the plaintext of a single block.
func (a AES) DecryptBlock(b [BlockSize]byte) [BlockSize]byte {
	return a.decryptBlock(b)
}

// EncryptBlock returns the ciphertext of a single block.
func (a AES) EncryptBlock(b [BlockSize]byte) [BlockSize]byte {
	return a.encryptBlock(b)
}

func checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesgo: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesgo: output not full block")
	}
}

func (a AES) encryptBlock(b [BlockSize]byte) [BlockSize]byte {
	state := convertArrayToMatrix(b)

	state = addRoundKey(state, a.schedule.roundKey(0))
	for r := 1; r < a.rounds; r++ {
		state = subMatrix(state)
		state = shiftRows(state)
		state = mixColumns(state)
		state = addRoundKey(state, a.schedule.roundKey(r))
	}
	state = subMatrix(state)
	state = shiftRows(state)
	state = addRoundKey(state, a.schedule.roundKey(a.rounds))

	return convertMatrixToArray(state)
}

func addRoundKey(state [4][4]byte, roundKey [4][4]byte) [4][4]byte {
	return xorMatrix(state, roundKey)
}

func shiftRows(state [4][4]byte) [4][4]byte {
	var s [4][4]byte
	s[0] = state[0]

	s[1] = [4]byte{state[1][1], state[1][2], state[1][3], state[1][0]}
	s[2] = [4]byte{state[2][2], state[2][3], state[2][0], state[2][1]}
	s[3] = [4]byte{state[3][3], state[3][0], state[3][1], state[3][2]}

	return s
}

// convertArrayToMatrix loads a block column-major: b[4c+r] is row r, column c.
func convertArrayToMatrix(b [16]byte) [4][4]byte {
	var r [4][4]byte

	r[0] = [4]byte{b[0], b[4], b[8], b[12]}
	r[1] = [4]byte{b[1], b[5], b[9], b[13]}
	r[2] = [4]byte{b[2], b[6], b[10], b[14]}
	r[3] = [4]byte{b[3], b[7], b[11], b[15]}

	return r
}

func convertMatrixToArray(m [4][4]byte) [16]byte {
	var r [16]byte
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[4*c+row] = m[row][c]
		}
	}
	return r
}

func xorMatrix(a, b [4][4]byte) [4][4]byte {
	var x [4][4]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			x[i][j] = a[i][j] ^ b[i][j]
		}
	}
	return x
}
