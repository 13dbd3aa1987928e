package mpcith

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

// CTRDRBG is the AES-256 CTR_DRBG (NIST SP 800-90A, no derivation
// function, no prediction resistance) in the exact configuration used by
// the NIST PQC known-answer test harness (randombytes_init() and
// randombytes()). Each Read() is one randombytes() call: the state is
// updated after every call, so splitting a read in two gives different
// output than a single read of the same total length.
//
// A CTRDRBG is an explicit context object; it is not safe for concurrent
// use, and is meant to be owned by one caller at a time.
type CTRDRBG struct {
	key   [32]byte
	v     [16]byte
	block cipher.Block
}

// Create a new CTR_DRBG from 48 bytes of entropy and an optional
// personalization string (nil, or exactly 48 bytes).
func NewCTRDRBG(entropy []byte, personalization []byte) (*CTRDRBG, error) {
	if len(entropy) != 48 {
		return nil, errors.Errorf("mpcith: CTR_DRBG entropy must be 48 bytes (got %d)", len(entropy))
	}
	if personalization != nil && len(personalization) != 48 {
		return nil, errors.Errorf("mpcith: CTR_DRBG personalization must be 48 bytes (got %d)",
			len(personalization))
	}
	var seed [48]byte
	copy(seed[:], entropy)
	for i := range personalization {
		seed[i] ^= personalization[i]
	}
	d := new(CTRDRBG)
	d.rekey()
	d.update(seed[:])
	return d, nil
}

// Reinstantiate the cipher from the current key.
func (d *CTRDRBG) rekey() {
	b, err := aes.NewCipher(d.key[:])
	if err != nil {
		panic(err)
	}
	d.block = b
}

// Increment V as a 128-bit big-endian counter.
func (d *CTRDRBG) incr_v() {
	for j := 15; j >= 0; j-- {
		d.v[j]++
		if d.v[j] != 0 {
			break
		}
	}
}

// CTR_DRBG_Update with optional provided data (nil or 48 bytes).
func (d *CTRDRBG) update(provided []byte) {
	var tmp [48]byte
	for i := 0; i < 3; i++ {
		d.incr_v()
		d.block.Encrypt(tmp[16*i:16*(i+1)], d.v[:])
	}
	for i := range provided {
		tmp[i] ^= provided[i]
	}
	copy(d.key[:], tmp[:32])
	copy(d.v[:], tmp[32:])
	d.rekey()
}

// Read fills p with pseudorandom bytes; it never fails.
func (d *CTRDRBG) Read(p []byte) (int, error) {
	var blk [16]byte
	n := len(p)
	for j := 0; j < n; j += 16 {
		d.incr_v()
		d.block.Encrypt(blk[:], d.v[:])
		copy(p[j:], blk[:])
	}
	d.update(nil)
	return n, nil
}
