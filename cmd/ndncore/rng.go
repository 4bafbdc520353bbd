package main

import (
	"crypto/rand"
	"encoding/binary"
)

// cryptoRNG mints Interest nonces from crypto/rand, satisfying
// pkt.RandSource/engine.RNG. It exists only for this tool: the library
// itself never reaches for crypto/rand on its own, since the host RNG is
// one of the external collaborators spec.md leaves out of scope.
type cryptoRNG struct{}

func (cryptoRNG) Uint32() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing to read is the CryptoFailure("signing
		// refused by RNG") case spec.md §7 describes; a nonce is not
		// security-critical the way a signature is, so this tool falls
		// back to a fixed value rather than aborting an otherwise
		// inspectable encode.
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}
