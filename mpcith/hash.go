package mpcith

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	sha3 "golang.org/x/crypto/sha3"
)

// Identifier for the extendable-output function (XOF) used for all
// hashing within a parameter set.
type HashKind uint8

const (
	// SHAKE128 (FIPS 202). Default for 128-bit security.
	SHAKE128 HashKind = 1

	// SHAKE256 (FIPS 202). Default for 192-bit and 256-bit security.
	SHAKE256 HashKind = 2

	// BLAKE2b in XOF mode (BLAKE2X construction with unknown output
	// length).
	BLAKE2bXOF HashKind = 3
)

// String returns the conventional name of the XOF.
func (h HashKind) String() string {
	switch h {
	case SHAKE128:
		return "SHAKE128"
	case SHAKE256:
		return "SHAKE256"
	case BLAKE2bXOF:
		return "BLAKE2b-XOF"
	default:
		return "unknown"
	}
}

// Domain separation tags. Each hash input is framed as the data followed
// by exactly one tag byte.
const (
	domain_tree   = 0x01
	domain_share  = 0x02
	domain_commit = 0x03
	domain_hash1  = 0x04
	domain_chal1  = 0x05
	domain_hash2  = 0x06
	domain_chal2  = 0x07
	domain_root   = 0x08
)

// An XOF instance: absorb with Write(), then squeeze with Read(). Reset()
// restores the initial (empty) state.
type xof interface {
	io.Writer
	io.Reader
	Reset()
}

// Create a new XOF instance for the given kind.
func new_xof(h HashKind) xof {
	switch h {
	case SHAKE128:
		return sha3.NewShake128()
	case SHAKE256:
		return sha3.NewShake256()
	case BLAKE2bXOF:
		x, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
		if err != nil {
			// Only possible with an oversized key, and we use none.
			panic(err)
		}
		return x
	default:
		panic(errors.Errorf("mpcith: unknown hash kind %d", h))
	}
}

// Check that a hash kind is supported.
func hash_kind_valid(h HashKind) bool {
	return h == SHAKE128 || h == SHAKE256 || h == BLAKE2bXOF
}

// Absorb a 16-bit integer (little-endian).
func write_u16(x io.Writer, v int) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	x.Write(b[:])
}

// Absorb a 32-bit integer (little-endian).
func write_u32(x io.Writer, v int) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	x.Write(b[:])
}

// Absorb the domain separation tag.
func write_tag(x io.Writer, tag byte) {
	var b [1]byte
	b[0] = tag
	x.Write(b[:])
}

// Four XOF instances driven together.
//
// In general this is not better than four sequential calls, but it can
// yield some speed-ups when the backend can process the four lanes at the
// same time (e.g. with AVX2 on x86 systems). The output of each lane is
// exactly what a standalone XOF over the same input would produce; the
// batched and scalar code paths are thus interchangeable.
type xofX4 struct {
	state [4]xof
}

// Create a new 4-lane XOF for the given kind.
func new_xof_x4(h HashKind) *xofX4 {
	r := new(xofX4)
	for i := 0; i < 4; i++ {
		r.state[i] = new_xof(h)
	}
	return r
}

// Reset all four lanes.
func (r *xofX4) reset() {
	for i := 0; i < 4; i++ {
		r.state[i].Reset()
	}
}

// Absorb some data into one lane.
func (r *xofX4) write(lane int, data []byte) {
	r.state[lane].Write(data)
}

// Absorb the same data into all four lanes.
func (r *xofX4) write_all(data []byte) {
	for i := 0; i < 4; i++ {
		r.state[i].Write(data)
	}
}

// Absorb a 16-bit little-endian integer into one lane.
func (r *xofX4) write_u16(lane int, v int) {
	write_u16(r.state[lane], v)
}

// Absorb a 32-bit little-endian integer into one lane.
func (r *xofX4) write_u32(lane int, v int) {
	write_u32(r.state[lane], v)
}

// Absorb the domain separation tag into all four lanes.
func (r *xofX4) write_tag(tag byte) {
	for i := 0; i < 4; i++ {
		write_tag(r.state[i], tag)
	}
}

// Squeeze output from the four lanes; dst[i] receives the output of
// lane i (nil entries are skipped).
func (r *xofX4) read(dst [4][]byte) {
	for i := 0; i < 4; i++ {
		if dst[i] != nil {
			r.state[i].Read(dst[i])
		}
	}
}
