package mpcith

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sha3 "golang.org/x/crypto/sha3"
)

func TestSelf(t *testing.T) {
	for _, p := range ParamSets() {
		fmt.Printf("[%s]", p.Name)
		n := 3
		if p.Weak {
			n = 20
		}
		for i := 0; i < n; i++ {
			sk, vk, err := KeyGen(p, nil)
			require.NoError(t, err)
			require.Len(t, sk, p.SigningKeySize())
			require.Len(t, vk, p.VerifyingKeySize())
			data := []byte(fmt.Sprintf("test %d", i))
			var sig []byte
			if p.Weak {
				sig, err = SignWeak(nil, sk, data)
			} else {
				sig, err = Sign(nil, sk, data)
			}
			require.NoError(t, err)
			require.Len(t, sig, p.SignatureSize(), p.Name)
			var r bool
			if p.Weak {
				r = VerifyWeak(vk, data, sig)
			} else {
				r = Verify(vk, data, sig)
			}
			if !r {
				t.Fatalf("signature verification failed (%s)\n", p.Name)
			}
			fmt.Print(".")
		}
	}
	fmt.Println()
}

// Known-answer values: SHA3-256(skey || vkey || sig), for the key pair
// from keygen seed 0x00..0x1F, salt 32*0x5A, signing seed 16*0xA5 and
// message "message".
var kat_toy = []struct {
	p      *ParamSet
	vkey   string
	hidden []int
	hash   string
}{
	{
		Toy_GF256_L4,
		"0f1c68ebf158aec8b9677f6cd55d1a20b39a846fd51fc1f4b12e5e05168a6d52e2eb94e720",
		[]int{0, 2, 2},
		"26243c1f290f0e1cd8e4a00d9f67ce75bff383e004b8f725bbf66a2e9f941159",
	},
	{
		Toy_ModQ_L8,
		"0ec4a6fb4a2e267341e7a9c60fd0887715424d7b1c9adeacbf6df3f9d93f47f557b20f105017a42f",
		[]int{5, 1},
		"778bc3b7f5dc159dd97a28bc5ab6e9b5e980856696bb6deb781883ad15783c6b",
	},
}

func TestKAT(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	salt := bytes.Repeat([]byte{0x5A}, 32)
	mseed := bytes.Repeat([]byte{0xA5}, 16)
	msg := []byte("message")
	for _, kat := range kat_toy {
		skey, vkey, err := keygen_inner(kat.p, seed)
		require.NoError(t, err)
		require.Equal(t, kat.vkey, hex.EncodeToString(vkey))

		// KeyGen() uses 32 bytes of randomness as the seed.
		sk2, vk2, err := KeyGen(kat.p, bytes.NewReader(seed))
		require.NoError(t, err)
		require.Equal(t, skey, sk2)
		require.Equal(t, vkey, vk2)

		for _, workers := range []int{1, 3} {
			for _, batched := range []bool{false, true} {
				s, err := NewScheme(kat.p, WithWorkers(workers), WithBatchedHashing(batched))
				require.NoError(t, err)
				sig, err := s.sign_seeded(salt, mseed, skey, msg)
				require.NoError(t, err)

				ds, err := decode_signature(kat.p, sig)
				require.NoError(t, err)
				hidden, err := derive_challenge2(kat.p.Hash, ds.hash2,
					kat.p.Parties, kat.p.Repetitions)
				require.NoError(t, err)
				require.Equal(t, kat.hidden, hidden)

				sc := sha3.New256()
				sc.Write(skey)
				sc.Write(vkey)
				sc.Write(sig)
				require.Equal(t, kat.hash, hex.EncodeToString(sc.Sum(nil)),
					"%s workers=%d batched=%v", kat.p.Name, workers, batched)
				require.True(t, s.Verify(vkey, msg, sig))
			}
		}

		// Signing does not alter the caller's buffers.
		require.Equal(t, bytes.Repeat([]byte{0xA5}, 16), mseed)
		require.Equal(t, sk2, skey)
	}
}

func TestDeterminism(t *testing.T) {
	// With the same random source contents, the output is the same
	// whatever the scheduling options.
	for _, p := range []*ParamSet{GF256_L16_128, ModQ_L32_256} {
		seed := make([]byte, 32+p.SaltSize()+p.SeedSize())
		sha3.ShakeSum256(seed, []byte(p.Name))
		var ref []byte
		for _, workers := range []int{1, 2, 8} {
			for _, batched := range []bool{false, true} {
				s, err := NewScheme(p, WithRandom(bytes.NewReader(seed)),
					WithWorkers(workers), WithBatchedHashing(batched))
				require.NoError(t, err)
				sk, vk, err := s.KeyGen()
				require.NoError(t, err)
				sig, err := s.Sign(sk, []byte("determinism"))
				require.NoError(t, err)
				require.True(t, s.Verify(vk, []byte("determinism"), sig))
				if ref == nil {
					ref = sig
				} else {
					require.Equal(t, ref, sig, "%s workers=%d batched=%v",
						p.Name, workers, batched)
				}
			}
		}
	}
}

func TestWeakSegregation(t *testing.T) {
	msg := []byte("test")
	sk, vk, err := KeyGen(Toy_GF256_L4, nil)
	require.NoError(t, err)
	_, err = Sign(nil, sk, msg)
	require.True(t, errors.Is(err, ErrWeakParams))
	sig, err := SignWeak(nil, sk, msg)
	require.NoError(t, err)
	require.False(t, Verify(vk, msg, sig))
	require.True(t, VerifyWeak(vk, msg, sig))

	sk, vk, err = KeyGen(GF256_L16_128, nil)
	require.NoError(t, err)
	_, err = SignWeak(nil, sk, msg)
	require.True(t, errors.Is(err, ErrStrongParams))
	sig, err = Sign(nil, sk, msg)
	require.NoError(t, err)
	require.False(t, VerifyWeak(vk, msg, sig))
	require.True(t, Verify(vk, msg, sig))

	// Unknown or malformed headers.
	_, err = Sign(nil, nil, msg)
	require.True(t, errors.Is(err, ErrInvalidSigningKey))
	_, err = Sign(nil, vk, msg)
	require.True(t, errors.Is(err, ErrInvalidSigningKey))
	bad := append([]byte(nil), sk...)
	bad[0] = 0xFF
	_, err = Sign(nil, bad, msg)
	require.True(t, errors.Is(err, ErrUnknownParams))
	require.False(t, Verify(nil, msg, sig))
	require.False(t, Verify([]byte{0x7F}, msg, sig))
}

func TestTamper(t *testing.T) {
	for _, p := range []*ParamSet{Toy_GF256_L4, Toy_ModQ_L8} {
		s, err := NewScheme(p)
		require.NoError(t, err)
		sk, vk, err := s.KeyGen()
		require.NoError(t, err)
		ds := p.DigestSize()
		rs := p.repetitionSize()
		// Offsets of one byte in each region, relative to the start of a
		// repetition: path, commitment, aux share, broadcast.
		regions := []int{
			0,
			p.Depth() * p.SeedSize(),
			p.Depth()*p.SeedSize() + ds,
			p.Depth()*p.SeedSize() + ds + p.Relation.WitnessSize(),
		}
		for i := 0; i < 100; i++ {
			msg := []byte(fmt.Sprintf("tamper %d", i))
			sig, err := s.Sign(sk, msg)
			require.NoError(t, err)
			require.True(t, s.Verify(vk, msg, sig))

			var offsets []int
			offsets = append(offsets, i%p.SaltSize(), p.SaltSize()+i%ds,
				p.SaltSize()+ds+i%ds)
			for e := 0; e < p.Repetitions; e++ {
				base := p.SaltSize() + 2*ds + e*rs
				for _, r := range regions {
					offsets = append(offsets, base+r)
				}
			}
			for _, off := range offsets {
				bad := append([]byte(nil), sig...)
				bad[off] ^= byte(1 << (i & 7))
				if s.Verify(vk, msg, bad) {
					t.Fatalf("%s: tampered signature accepted (offset %d)", p.Name, off)
				}
			}

			// Wrong message, wrong length.
			require.False(t, s.Verify(vk, []byte("other"), sig))
			require.False(t, s.Verify(vk, msg, sig[:len(sig)-1]))
			require.False(t, s.Verify(vk, msg, append(sig, 0)))
		}

		// Another key.
		sk2, vk2, err := s.KeyGen()
		require.NoError(t, err)
		sig, err := s.Sign(sk2, []byte("x"))
		require.NoError(t, err)
		require.False(t, s.Verify(vk, []byte("x"), sig))
		require.True(t, s.Verify(vk2, []byte("x"), sig))
	}
}

func TestInvalidWitness(t *testing.T) {
	// A signing key whose witness does not match its public instance
	// yields no signature.
	s, err := NewScheme(Toy_GF256_L4)
	require.NoError(t, err)
	sk, _, err := s.KeyGen()
	require.NoError(t, err)
	sk[1] ^= 0x01
	_, err = s.Sign(sk, []byte("test"))
	require.True(t, errors.Is(err, ErrInvalidSigningKey))
}

type failReader struct{}

func (failReader) Read(p []byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestRandomSourceFailure(t *testing.T) {
	_, _, err := KeyGen(Toy_ModQ_L8, failReader{})
	require.True(t, errors.Is(err, ErrRandomSource))
	s, err := NewScheme(Toy_ModQ_L8)
	require.NoError(t, err)
	sk, _, err := s.KeyGen()
	require.NoError(t, err)
	_, err = SignWeak(failReader{}, sk, []byte("test"))
	require.True(t, errors.Is(err, ErrRandomSource))
}

func TestManyRepetitions(t *testing.T) {
	// Custom sets accepted by Validate sign and verify, up to the largest
	// number of repetitions.
	reps := []int{1100}
	if !testing.Short() {
		reps = append(reps, 65535)
	}
	for _, tau := range reps {
		p := &ParamSet{
			Name: "Custom-GF256-L2", ID: 0x70, Lambda: 128,
			Parties: 2, Repetitions: tau, Hash: SHAKE128,
			Relation: &GF256Relation{N: 8, M: 4, T: 4},
		}
		s, err := NewScheme(p, WithWorkers(4))
		require.NoError(t, err)
		sk, vk, err := s.KeyGen()
		require.NoError(t, err)
		sig, err := s.Sign(sk, []byte("test"))
		require.NoError(t, err, "tau=%d", tau)
		require.Len(t, sig, p.SignatureSize())
		require.True(t, s.Verify(vk, []byte("test"), sig), "tau=%d", tau)
	}
}

func TestProtocolOrder(t *testing.T) {
	s, err := NewScheme(Toy_GF256_L4)
	require.NoError(t, err)
	sg := &signer{s: s}
	require.Panics(t, func() { sg.respond1() })
	require.Panics(t, func() { sg.finalize() })
	assert.Equal(t, "challenge1-derived", stateChallenge1Derived.String())
	assert.Equal(t, "state(42)", protocolState(42).String())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s, err := NewScheme(Toy_GF256_L4, WithLogger(log))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"params":"Toy-GF256-L4"`)
	require.Contains(t, buf.String(), `"message":"scheme initialized"`)

	sk, vk, err := s.KeyGen()
	require.NoError(t, err)
	sig, err := s.Sign(sk, []byte("test"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"siglen":324`)

	buf.Reset()
	require.False(t, s.Verify(vk, []byte("test"), sig[1:]))
	require.Contains(t, buf.String(), `"reason":"length"`)
	buf.Reset()
	require.False(t, s.Verify(sk[:len(vk)], []byte("test"), sig))
	require.Contains(t, buf.String(), `"reason":"key"`)
	buf.Reset()
	require.False(t, s.Verify(vk, []byte("other"), sig))
	require.Contains(t, buf.String(), `"reason":"proof"`)
	require.NotContains(t, buf.String(), "repetition")

	// Nothing secret is logged.
	buf.Reset()
	_, err = s.Sign(sk, []byte("test"))
	require.NoError(t, err)
	require.False(t, strings.Contains(buf.String(), hex.EncodeToString(sk[1:9])))
}

func TestKATContext(t *testing.T) {
	var entropy [48]byte
	for i := range entropy {
		entropy[i] = byte(i)
	}
	for _, p := range []*ParamSet{Toy_ModQ_L8, GF256_L16_128} {
		var outs [2][]byte
		for k := 0; k < 2; k++ {
			kc, err := NewKATContext(p, entropy[:], nil)
			require.NoError(t, err)
			require.Same(t, p, kc.Scheme().Params())

			// Per-vector seed, as drawn by the KAT generator.
			seed := make([]byte, 48)
			kc.RandomBytes(seed)
			kc, err = NewKATContext(p, seed, nil)
			require.NoError(t, err)

			pk := make([]byte, p.VerifyingKeySize())
			sk := make([]byte, p.SigningKeySize())
			require.Equal(t, 0, kc.Keypair(pk, sk))
			msg := []byte("kat message")
			sig, siglen := kc.Sign(sk, msg)
			require.Equal(t, p.SignatureSize(), siglen)
			require.Equal(t, 0, kc.Verify(pk, msg, sig, siglen))
			require.Equal(t, -1, kc.Verify(pk, msg, sig, siglen-1))
			require.Equal(t, -1, kc.Verify(pk, msg, sig[:siglen-1], siglen-1))
			require.Equal(t, -1, kc.Verify(pk, []byte("other"), sig, siglen))
			bad := append([]byte(nil), sig...)
			bad[siglen-1] ^= 0x80
			require.Equal(t, -1, kc.Verify(pk, msg, bad, siglen))

			_, n := kc.Sign(pk, msg)
			require.Equal(t, -1, n)
			require.Panics(t, func() { kc.Keypair(pk[1:], sk) })

			outs[k] = append(append(append([]byte(nil), pk...), sk...), sig...)
		}
		require.Equal(t, outs[0], outs[1], p.Name)
	}
	_, err := NewKATContext(Toy_ModQ_L8, make([]byte, 47), nil)
	require.Error(t, err)
	_, err = NewKATContext(&ParamSet{Name: "bad"}, make([]byte, 48), nil)
	require.True(t, errors.Is(err, ErrInvalidParams))
}

func BenchmarkKeyGen_ModQ_L16_128(b *testing.B) {
	bench_keygen_inner(b, ModQ_L16_128)
}

func BenchmarkKeyGen_GF256_L16_128(b *testing.B) {
	bench_keygen_inner(b, GF256_L16_128)
}

func bench_keygen_inner(b *testing.B, p *ParamSet) {
	for i := 0; i < b.N; i++ {
		KeyGen(p, nil)
	}
}

func BenchmarkSign_ModQ_L16_128(b *testing.B) {
	bench_sign_inner(b, ModQ_L16_128)
}

func BenchmarkSign_ModQ_L256_128(b *testing.B) {
	bench_sign_inner(b, ModQ_L256_128)
}

func BenchmarkSign_GF256_L16_128(b *testing.B) {
	bench_sign_inner(b, GF256_L16_128)
}

func BenchmarkSign_GF256_L16_128_B2b(b *testing.B) {
	bench_sign_inner(b, GF256_L16_128_B2b)
}

func bench_sign_inner(b *testing.B, p *ParamSet) {
	sk, vk, _ := KeyGen(p, nil)
	data := []byte("test")

	// A few blank signatures for "warm-up".
	for i := 0; i < 5; i++ {
		sig, err := Sign(nil, sk, data)
		if err != nil {
			b.Fatalf("failure, err = %v", err)
		}
		if !Verify(vk, data, sig) {
			b.Fatalf("ERR: signature verification failed")
		}
		data = sig[len(sig)-32:]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sig, _ := Sign(nil, sk, data)
		data = sig[len(sig)-32:]
	}
}

func BenchmarkVerify_ModQ_L16_128(b *testing.B) {
	bench_verify_inner(b, ModQ_L16_128)
}

func BenchmarkVerify_GF256_L16_128(b *testing.B) {
	bench_verify_inner(b, GF256_L16_128)
}

func bench_verify_inner(b *testing.B, p *ParamSet) {
	sk, vk, _ := KeyGen(p, nil)
	data := []byte("test")
	sig, _ := Sign(nil, sk, data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !Verify(vk, data, sig) {
			b.Fatalf("ERR: signature verification failed")
		}
	}
}
