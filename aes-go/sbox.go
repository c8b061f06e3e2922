package aesgo

import "math/bits"

const (
	// first row of the affine transform matrix; row i is this rotated left by i
	affineRow   = 0xF1
	affineConst = 0x63
)

// built once; never written after init
var sBoxTable, invSBoxTable = buildSBoxTables()

// buildSBoxTables derives the substitution box and its inverse from
// the field inverse followed by the AES affine transform.
func buildSBoxTables() (sbox, inv [256]byte) {
	for i := 0; i < 256; i++ {
		a := byte(i)
		ai := inverse(a)

		var acc byte
		for bit := 0; bit < 8; bit++ {
			row := bits.RotateLeft8(affineRow, bit)
			parity := byte(bits.OnesCount8(row&ai)) & 1
			acc |= parity << bit
		}

		s := acc ^ affineConst
		sbox[a] = s
		inv[s] = a
	}
	return sbox, inv
}

// SBox returns a copy of the forward substitution table.
func SBox() [256]byte {
	return sBoxTable
}

// InvSBox returns a copy of the inverse substitution table.
func InvSBox() [256]byte {
	return invSBoxTable
}

func subWord(w uint32) uint32 {
	return uint32(sBoxTable[w>>24])<<24 |
		uint32(sBoxTable[(w>>16)&0xff])<<16 |
		uint32(sBoxTable[(w>>8)&0xff])<<8 |
		uint32(sBoxTable[w&0xff])
}

func invSubWord(w uint32) uint32 {
	return uint32(invSBoxTable[w>>24])<<24 |
		uint32(invSBoxTable[(w>>16)&0xff])<<16 |
		uint32(invSBoxTable[(w>>8)&0xff])<<8 |
		uint32(invSBoxTable[w&0xff])
}

func subMatrix(state [4][4]byte) [4][4]byte {
	var s [4][4]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			s[i][j] = sBoxTable[state[i][j]]
		}
	}
	return s
}

func invSubMatrix(state [4][4]byte) [4][4]byte {
	var s [4][4]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			s[i][j] = invSBoxTable[state[i][j]]
		}
	}
	return s
}
