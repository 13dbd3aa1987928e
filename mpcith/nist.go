package mpcith

// KATContext exposes a parameter set through the calling convention of
// the NIST PQC known-answer test harness: integer status codes, and all
// randomness drawn from an AES-256 CTR_DRBG seeded once by the caller.
// The DRBG is owned by the context; a KATContext is not safe for
// concurrent use.
type KATContext struct {
	scheme *Scheme
	drbg   *CTRDRBG
}

// Create a new KAT context over parameter set p, with the DRBG seeded
// from 48 bytes of entropy and an optional 48-byte personalization string.
// Weak parameter sets are accepted.
func NewKATContext(p *ParamSet, entropy []byte, personalization []byte, opts ...Option) (*KATContext, error) {
	d, err := NewCTRDRBG(entropy, personalization)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithRandom(d))
	s, err := NewScheme(p, opts...)
	if err != nil {
		return nil, err
	}
	return &KATContext{scheme: s, drbg: d}, nil
}

// Get the underlying scheme.
func (kc *KATContext) Scheme() *Scheme {
	return kc.scheme
}

// Fill x with bytes from the DRBG (one randombytes() call).
func (kc *KATContext) RandomBytes(x []byte) {
	kc.drbg.Read(x)
}

// Generate a key pair into pk and sk, which must have lengths
// VerifyingKeySize() and SigningKeySize(). Returned value is 0.
func (kc *KATContext) Keypair(pk []byte, sk []byte) int {
	p := kc.scheme.params
	if len(pk) != p.VerifyingKeySize() || len(sk) != p.SigningKeySize() {
		panic("mpcith: wrong key buffer length")
	}
	skey, vkey, err := kc.scheme.KeyGen()
	if err != nil {
		// The DRBG never fails and the parameter set is validated.
		panic(err)
	}
	copy(pk, vkey)
	copy(sk, skey)
	return 0
}

// Sign msg with sk. Returned values are the signature and its length;
// on a malformed signing key, (nil, -1) is returned.
func (kc *KATContext) Sign(sk []byte, msg []byte) ([]byte, int) {
	sig, err := kc.scheme.Sign(sk, msg)
	if err != nil {
		return nil, -1
	}
	return sig, len(sig)
}

// Verify signature sig (of declared length siglen) over msg with pk.
// Returned value is 0 for a valid signature, -1 otherwise.
func (kc *KATContext) Verify(pk []byte, msg []byte, sig []byte, siglen int) int {
	if siglen != len(sig) || !kc.scheme.Verify(pk, msg, sig) {
		return -1
	}
	return 0
}
