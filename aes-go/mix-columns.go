package aesgo

// invMixRow is the first row of the inverse MDS matrix;
// row r is this row rotated right by r.
var invMixRow = [4]byte{0x0E, 0x0B, 0x0D, 0x09}

// mixColumns mixes the columns of the state matrix.
func mixColumns(s [4][4]byte) [4][4]byte {
	// Temporary matrix to hold the results
	var ss [4][4]byte

	for c := 0; c < 4; c++ {
		ss[0][c] = gmul(0x02, s[0][c]) ^ gmul(0x03, s[1][c]) ^ s[2][c] ^ s[3][c]
		ss[1][c] = s[0][c] ^ gmul(0x02, s[1][c]) ^ gmul(0x03, s[2][c]) ^ s[3][c]
		ss[2][c] = s[0][c] ^ s[1][c] ^ gmul(0x02, s[2][c]) ^ gmul(0x03, s[3][c])
		ss[3][c] = gmul(0x03, s[0][c]) ^ s[1][c] ^ s[2][c] ^ gmul(0x02, s[3][c])
	}

	return ss
}

// invMixColumns multiplies every column by the inverse MDS matrix.
func invMixColumns(s [4][4]byte) [4][4]byte {
	var ss [4][4]byte

	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var v byte
			for i := 0; i < 4; i++ {
				v ^= gmul(invMixRow[(i-r+4)%4], s[i][c])
			}
			ss[r][c] = v
		}
	}

	return ss
}
