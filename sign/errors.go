package sign

import "fmt"

// ErrCryptoFailure reports either half of spec.md §7's CryptoFailure kind:
// signing refused by the RNG, or a signature that does not match its
// signed range (a tampered Data packet, the wrong HMAC key, a corrupted
// SignatureValue).
type ErrCryptoFailure struct {
	Reason string
}

func (e ErrCryptoFailure) Error() string {
	return "crypto failure: " + e.Reason
}

// CryptoFailure constructs an ErrCryptoFailure with a formatted reason.
func CryptoFailure(format string, args ...any) error {
	return ErrCryptoFailure{Reason: fmt.Sprintf(format, args...)}
}
