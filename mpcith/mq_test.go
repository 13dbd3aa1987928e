package mpcith

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	sha3 "golang.org/x/crypto/sha3"
)

func TestMqAdd(t *testing.T) {
	for x := uint32(0); x < q; x++ {
		for y := uint32(0); y < q; y++ {
			z := mq_add(x, y)
			r := (x + y) % q
			if r != z {
				t.Fatalf("ERR mq_add: %d %d -> %d (exp: %d)\n", x, y, z, r)
			}
		}
	}
}

func TestMqSub(t *testing.T) {
	for x := uint32(0); x < q; x++ {
		for y := uint32(0); y < q; y++ {
			z := mq_sub(x, y)
			r := (q + x - y) % q
			if r != z {
				t.Fatalf("ERR mq_sub: %d %d -> %d (exp: %d)\n", x, y, z, r)
			}
		}
	}
}

func TestMqReduce(t *testing.T) {
	sh := sha3.NewShake256()
	sh.Write([]byte("test_mq_reduce"))
	for i := 0; i < 1000000; i++ {
		var buf [4]byte
		sh.Read(buf[:])
		x := binary.LittleEndian.Uint32(buf[:])
		require.Equal(t, x%q, mq_reduce(x), "x = %d", x)
	}
	for _, x := range []uint32{0, q - 1, q, 2*q - 1, 2 * q, 0xFFFFFFFF} {
		require.Equal(t, x%q, mq_reduce(x), "x = %d", x)
	}
}

func TestMqMac(t *testing.T) {
	sh := sha3.NewShake256()
	sh.Write([]byte("test_mq_mac"))
	for i := 0; i < 100000; i++ {
		var buf [6]byte
		sh.Read(buf[:])
		acc := uint32(binary.LittleEndian.Uint16(buf[0:])) % q
		x := uint32(binary.LittleEndian.Uint16(buf[2:])) % q
		y := uint32(binary.LittleEndian.Uint16(buf[4:])) % q
		r := uint32((uint64(acc) + uint64(x)*uint64(y)) % q)
		require.Equal(t, r, mq_mac(acc, x, y))
	}
}

func TestMqFromSmall(t *testing.T) {
	require.Equal(t, uint32(0), mq_from_small(0))
	require.Equal(t, uint32(1), mq_from_small(1))
	require.Equal(t, uint32(q-1), mq_from_small(-1))
	require.Equal(t, uint32(1), mq_from_small(-(q - 1)))
}

func TestMqSampleUniform(t *testing.T) {
	// Words 61445 and above are skipped; others are reduced.
	src := []byte{
		0x04, 0xF0, // 61444 -> 61444 - 4q = 12288
		0x05, 0xF0, // 61445, rejected
		0xFF, 0xFF, // rejected
		0x01, 0x30, // 12289 -> 0
		0x2A, 0x00, // 42
	}
	src = append(src, make([]byte, 136-len(src))...)
	h := make([]uint16, 3)
	mq_sample_uniform(bytes.NewReader(src), h)
	require.Equal(t, []uint16{12288, 0, 42}, h)

	sh := sha3.NewShake128()
	sh.Write([]byte("test_mq_sample"))
	h = make([]uint16, 4096)
	mq_sample_uniform(sh, h)
	for _, v := range h {
		require.Less(t, v, uint16(q))
	}
}

func TestModqCodec(t *testing.T) {
	sh := sha3.NewShake256()
	sh.Write([]byte("test_modq_codec"))
	for n := 4; n <= 256; n += 4 {
		h := make([]uint16, n)
		mq_sample_uniform(sh, h)
		buf := make([]byte, modq_packed_size(n))
		require.Equal(t, len(buf), modq_encode(h, buf))
		h2 := make([]uint16, n)
		require.Equal(t, 1, modq_decode(buf, h2))
		require.Equal(t, h, h2)
	}

	// Known packing: four values, first one in the low bits.
	buf := make([]byte, 7)
	modq_encode([]uint16{1, 2, 3, 12288}, buf)
	require.Equal(t, []byte{0x01, 0x80, 0x00, 0x30, 0x00, 0x00, 0xC0}, buf)

	// Non-canonical encodings are reported, and decoded values are still
	// reduced.
	bad := []byte{0xFF, 0x3F, 0x00, 0x00, 0x00, 0x00, 0x00}
	h := make([]uint16, 4)
	require.Equal(t, 0, modq_decode(bad, h))
	require.Equal(t, []uint16{0x3FFF - q, 0, 0, 0}, h)
	edge := []byte{0x01, 0x30, 0x00, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, 0, modq_decode(edge, h))
	require.Equal(t, uint16(0), h[0])
}
