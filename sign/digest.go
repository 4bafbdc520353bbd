// Package sign implements the three signature algorithms spec.md §4.5
// requires a Data packet to carry: a bare SHA-256 digest, an HMAC-SHA-256
// MAC under a shared key, and ECDSA over P-256. Each type satisfies
// pkt.Signer and/or pkt.Verifier, grounded on the teacher's
// std/security/signer package shape (one file per algorithm, a
// constructor returning the interface, symmetric Sign/Verify pairs).
package sign

import (
	"bytes"
	"crypto/sha256"

	"github.com/named-data/ndncore/pkt"
)

// digestSigner signs nothing but a SHA-256 digest of the signed range: an
// integrity check with no authentication, matching the original
// ndn_data_create2-path "no signing key" case.
type digestSigner struct{}

func (digestSigner) Type() pkt.SigType { return pkt.SigTypeDigestSha256 }

func (digestSigner) KeyLocatorName() (pkt.Name, bool) { return nil, false }

func (digestSigner) Sign(signed []byte) ([]byte, error) {
	h := sha256.Sum256(signed)
	return h[:], nil
}

// NewDigestSigner returns a Signer that produces a bare SHA-256 digest.
func NewDigestSigner() pkt.Signer { return digestSigner{} }

type digestVerifier struct{}

func (digestVerifier) Type() pkt.SigType { return pkt.SigTypeDigestSha256 }

func (digestVerifier) Verify(signed, sig []byte) error {
	h := sha256.Sum256(signed)
	if !bytes.Equal(h[:], sig) {
		return CryptoFailure("sha256 digest mismatch")
	}
	return nil
}

// NewDigestVerifier returns a Verifier for NewDigestSigner's output.
func NewDigestVerifier() pkt.Verifier { return digestVerifier{} }
