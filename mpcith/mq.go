package mpcith

import (
	"io"
)

// Arithmetic modulo q = 12289.
//
// Values are kept in the [0,q-1] range ("canonical" representation). All
// operations below are constant-time: no branch or memory access depends
// on the operand values.

const q = 12289

// floor(2^40 / q), for Barrett reduction of 32-bit values.
const mq_barrett = 89470797

// Reduce a 32-bit value modulo q.
func mq_reduce(x uint32) uint32 {
	t := uint32((uint64(x) * mq_barrett) >> 40)
	r := x - t*q
	// r is in [0,2q-1] at this point.
	r -= q
	r += q & -(r >> 31)
	return r
}

// Addition modulo q.
func mq_add(x uint32, y uint32) uint32 {
	z := x + y - q
	z += q & -(z >> 31)
	return z
}

// Subtraction modulo q.
func mq_sub(x uint32, y uint32) uint32 {
	z := x - y
	z += q & -(z >> 31)
	return z
}

// Multiply-accumulate: returns (acc + x*y) mod q.
func mq_mac(acc uint32, x uint32, y uint32) uint32 {
	return mq_reduce(acc + x*y)
}

// Map a small signed integer (absolute value lower than q) to [0,q-1].
func mq_from_small(v int32) uint32 {
	z := uint32(v)
	z += q & -(z >> 31)
	return z
}

// Fill h[] with uniform values modulo q, read from the provided stream.
// 16-bit little-endian words are extracted; words of value 61445 or more
// are rejected (61445 = 5*q), others are reduced modulo q. The stream is
// a public XOF output, hence the non-constant-time reduction loop is fine.
func mq_sample_uniform(r io.Reader, h []uint16) {
	i := 0
	var buf [136]byte
	ptr := len(buf)
	for i < len(h) {
		if ptr == len(buf) {
			read_stream(r, buf[:])
			ptr = 0
		}
		w := uint32(buf[ptr]) | (uint32(buf[ptr+1]) << 8)
		ptr += 2
		if w < 61445 {
			for w >= q {
				w -= q
			}
			h[i] = uint16(w)
			i += 1
		}
	}
}

// Get the size (in bytes) of the packed encoding of n values modulo q;
// n MUST be a multiple of 4.
func modq_packed_size(n int) int {
	return (n >> 2) * 7
}

// Encode values modulo q into bytes, 14 bits per value. Four values go
// into seven bytes, little-endian (first value in the low bits). The number
// of source values MUST be a multiple of 4. All source values MUST be in
// [0,q-1]. The output size (in bytes) is returned.
func modq_encode(h []uint16, dst []byte) int {
	j := 0
	for i := 0; i+3 < len(h); i += 4 {
		x := uint64(h[i+0]) |
			(uint64(h[i+1]) << 14) |
			(uint64(h[i+2]) << 28) |
			(uint64(h[i+3]) << 42)
		for k := 0; k < 7; k++ {
			dst[j] = uint8(x >> (k << 3))
			j++
		}
	}
	return j
}

// Decode values modulo q (14 bits per value, see modq_encode()). The
// number of values is len(h), which MUST be a multiple of 4; src MUST
// have length at least modq_packed_size(len(h)).
//
// Decoded values are always reduced into [0,q-1], so that subsequent
// arithmetic is well-defined. The returned value is 1 if all encoded
// values were canonical (lower than q), 0 otherwise. The decoding
// process is constant-time.
func modq_decode(src []byte, h []uint16) int {
	bad := uint32(0)
	j := 0
	for i := 0; i+3 < len(h); i += 4 {
		x := uint64(0)
		for k := 0; k < 7; k++ {
			x |= uint64(src[j+k]) << (k << 3)
		}
		j += 7
		for k := 0; k < 4; k++ {
			w := uint32(x>>(14*k)) & 0x3FFF
			// bad gets its top bit set if w >= q.
			bad |= ^(w - q)
			h[i+k] = uint16(mq_reduce(w))
		}
	}
	return int(1 - (bad >> 31))
}
