package mpcith

// Arithmetic in GF(2^8), with the AES reduction polynomial
// X^8 + X^4 + X^3 + X + 1 (0x11B). Addition and subtraction are both
// XOR. Multiplication is implemented with masks so that it is
// constant-time.

// Multiplication in GF(2^8).
func gf_mul(a uint8, b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r ^= a & -(b & 1)
		b >>= 1
		a = (a << 1) ^ (0x1B & -(a >> 7))
	}
	return r
}

// Compute the inner product of two vectors of the same length.
func gf_dot(a []uint8, b []uint8) uint8 {
	var r uint8
	for i := range a {
		r ^= gf_mul(a[i], b[i])
	}
	return r
}
