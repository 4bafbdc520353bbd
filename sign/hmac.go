package sign

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/named-data/ndncore/pkt"
)

// hmacSigner signs the signed range with HMAC-SHA-256 under a shared key.
type hmacSigner struct {
	key []byte
}

func (s *hmacSigner) Type() pkt.SigType { return pkt.SigTypeHmacSha256 }

func (*hmacSigner) KeyLocatorName() (pkt.Name, bool) { return nil, false }

func (s *hmacSigner) Sign(signed []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	if _, err := mac.Write(signed); err != nil {
		return nil, err
	}
	return mac.Sum(nil), nil
}

// NewHmacSigner returns a Signer that uses HmacSha256 under key.
func NewHmacSigner(key []byte) pkt.Signer {
	return &hmacSigner{key: key}
}

type hmacVerifier struct {
	key []byte
}

func (v *hmacVerifier) Type() pkt.SigType { return pkt.SigTypeHmacSha256 }

func (v *hmacVerifier) Verify(signed, sig []byte) error {
	mac := hmac.New(sha256.New, v.key)
	if _, err := mac.Write(signed); err != nil {
		return err
	}
	if !hmac.Equal(mac.Sum(nil), sig) {
		return CryptoFailure("hmac-sha256 mismatch")
	}
	return nil
}

// NewHmacVerifier returns a Verifier that checks an HmacSha256 signature
// under key.
func NewHmacVerifier(key []byte) pkt.Verifier {
	return &hmacVerifier{key: key}
}
