package aesgo

// decryptBlock runs the inverse cipher over one block. The state is
// threaded by value through every step.
func (a AES) decryptBlock(b [BlockSize]byte) [BlockSize]byte {
	state := convertArrayToMatrix(b)

	state = addRoundKey(state, a.schedule.roundKey(a.rounds))
	for r := a.rounds - 1; r > 0; r-- {
		state = a.decryptRound(state, r)
	}

	// final round has no InvMixColumns
	state = invShiftRows(state)
	state = invSubMatrix(state)
	state = addRoundKey(state, a.schedule.roundKey(0))

	return convertMatrixToArray(state)
}

func (a AES) decryptRound(state [4][4]byte, round int) [4][4]byte {
	r := invShiftRows(state)
	r = invSubMatrix(r)
	r = addRoundKey(r, a.schedule.roundKey(round))
	r = invMixColumns(r)
	return r
}

// invShiftRows rotates row r right by r positions.
func invShiftRows(state [4][4]byte) [4][4]byte {
	var s [4][4]byte
	s[0] = state[0]

	s[1] = [4]byte{state[1][3], state[1][0], state[1][1], state[1][2]}
	s[2] = [4]byte{state[2][2], state[2][3], state[2][0], state[2][1]}
	s[3] = [4]byte{state[3][1], state[3][2], state[3][3], state[3][0]}

	return s
}
