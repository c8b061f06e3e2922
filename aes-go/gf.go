package aesgo

// gmul performs Galois Field (256) multiplication of two bytes
// modulo x^8 + x^4 + x^3 + x + 1.
//
// The loop always runs 8 times and selects with masks instead of
// branching on the operands.
func gmul(a, b byte) byte {
	var p byte

	for counter := 0; counter < 8; counter++ {
		p ^= a & -(b & 1)

		carry := -(a >> 7)
		a = (a << 1) ^ (0x1B & carry)
		b >>= 1
	}

	return p
}

// inverse returns the multiplicative inverse of a in GF(2^8),
// computed as a^254. inverse(0) is 0.
func inverse(a byte) byte {
	// a^254 == a^-1 since the multiplicative group has order 255
	inv := a
	for i := 0; i < 253; i++ {
		inv = gmul(inv, a)
	}
	return inv
}
