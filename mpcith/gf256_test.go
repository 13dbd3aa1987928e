package mpcith

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Reference multiplication (branching shift-and-add).
func gf_mul_ref(a uint8, b uint8) uint8 {
	r := uint16(0)
	x := uint16(a)
	for i := 0; i < 8; i++ {
		if (b>>i)&1 != 0 {
			r ^= x << i
		}
	}
	for i := 15; i >= 8; i-- {
		if (r>>i)&1 != 0 {
			r ^= 0x11B << (i - 8)
		}
	}
	return uint8(r)
}

func TestGFMul(t *testing.T) {
	// FIPS 197, section 4.2.
	require.Equal(t, uint8(0xC1), gf_mul(0x57, 0x83))
	require.Equal(t, uint8(0xFE), gf_mul(0x57, 0x13))
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			z := gf_mul(uint8(a), uint8(b))
			r := gf_mul_ref(uint8(a), uint8(b))
			if z != r {
				t.Fatalf("ERR gf_mul: %d %d -> %d (exp: %d)\n", a, b, z, r)
			}
		}
	}
}

func TestGFDot(t *testing.T) {
	a := []uint8{0x57, 0x57, 0x01}
	b := []uint8{0x83, 0x13, 0x42}
	require.Equal(t, uint8(0xC1^0xFE^0x42), gf_dot(a, b))
	require.Equal(t, uint8(0), gf_dot(nil, nil))
}
