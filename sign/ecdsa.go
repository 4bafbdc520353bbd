package sign

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/named-data/ndncore/internal/optional"
	"github.com/named-data/ndncore/pkt"
)

// ecdsaSigLen is the fixed r||s encoding width for a P-256 signature: two
// 32-byte big-endian field elements, with no ASN.1 framing. This matches
// the original C signer's fixed 64-byte ECDSA signature length (plus its
// 2-byte TLV header, 66 bytes total on the wire).
const ecdsaSigLen = 64

// ecdsaSigner signs the signed range's SHA-256 digest with ECDSA over
// P-256.
type ecdsaSigner struct {
	priv    *ecdsa.PrivateKey
	keyName optional.Optional[pkt.Name]
}

// NewEcdsaSigner returns a Signer that uses EcdsaSha256 with priv. If
// keyName is non-empty it is carried as the Data's KeyLocator.
func NewEcdsaSigner(priv *ecdsa.PrivateKey, keyName pkt.Name) pkt.Signer {
	s := &ecdsaSigner{priv: priv}
	if len(keyName) > 0 {
		s.keyName.Set(keyName)
	}
	return s
}

func (s *ecdsaSigner) Type() pkt.SigType { return pkt.SigTypeEcdsaSha256 }

func (s *ecdsaSigner) KeyLocatorName() (pkt.Name, bool) { return s.keyName.Get() }

func (s *ecdsaSigner) Sign(signed []byte) ([]byte, error) {
	digest := sha256.Sum256(signed)
	r, sVal, err := ecdsa.Sign(rand.Reader, s.priv, digest[:])
	if err != nil {
		return nil, CryptoFailure("ecdsa signing failed: %v", err)
	}
	out := make([]byte, ecdsaSigLen)
	r.FillBytes(out[0:32])
	sVal.FillBytes(out[32:64])
	return out, nil
}

// ecdsaVerifier checks an EcdsaSha256 signature against a known public key.
type ecdsaVerifier struct {
	pub *ecdsa.PublicKey
}

// NewEcdsaVerifier returns a Verifier for EcdsaSha256 signatures under pub.
func NewEcdsaVerifier(pub *ecdsa.PublicKey) pkt.Verifier {
	return &ecdsaVerifier{pub: pub}
}

func (v *ecdsaVerifier) Type() pkt.SigType { return pkt.SigTypeEcdsaSha256 }

func (v *ecdsaVerifier) Verify(signed, sig []byte) error {
	if len(sig) != ecdsaSigLen {
		return CryptoFailure("ecdsa signature has length %d, want %d", len(sig), ecdsaSigLen)
	}
	r := new(big.Int).SetBytes(sig[0:32])
	s := new(big.Int).SetBytes(sig[32:64])
	digest := sha256.Sum256(signed)
	if !ecdsa.Verify(v.pub, digest[:], r, s) {
		return CryptoFailure("ecdsa-sha256 mismatch")
	}
	return nil
}

// GenerateEcdsaKey is a test/CLI convenience that mints a fresh P-256 key
// pair.
func GenerateEcdsaKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}
