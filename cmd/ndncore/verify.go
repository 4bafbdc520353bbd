package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/named-data/ndncore/pkt"
	"github.com/named-data/ndncore/sign"
)

func newVerifyCmd() *cobra.Command {
	var keyArg string

	cmd := &cobra.Command{
		GroupID: "packet",
		Use:     "verify HEX [--key ...]",
		Short:   "Re-verify a hex-encoded Data packet's signature",
		Example: `  ndncore verify 0603... --key 00112233`,
		Args:    cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				fail("invalid hex input: %v", err)
			}
			d, err := pkt.DataFromBlock(pkt.Block(raw))
			if err != nil {
				fail("malformed data: %v", err)
			}

			verifier := mustLoadVerifier(d, keyArg)
			if err := d.Verify(verifier); err != nil {
				fail("verification failed: %v", err)
			}
			fmt.Println("ok")
		},
	}
	cmd.Flags().StringVar(&keyArg, "key", "", "hmac: hex shared key; ecdsa: PEM public key file")
	return cmd
}

// mustLoadVerifier picks a Verifier matching d's own SignatureType,
// exiting the process on any configuration error.
func mustLoadVerifier(d pkt.Data, keyArg string) pkt.Verifier {
	switch d.SigType {
	case pkt.SigTypeDigestSha256:
		return sign.NewDigestVerifier()
	case pkt.SigTypeHmacSha256:
		if keyArg == "" {
			fail("verifying an HmacSha256 data requires --key <hex shared key>")
		}
		key, err := hex.DecodeString(keyArg)
		if err != nil {
			fail("invalid hex hmac key: %v", err)
		}
		return sign.NewHmacVerifier(key)
	case pkt.SigTypeEcdsaSha256:
		if keyArg == "" {
			fail("verifying an EcdsaSha256 data requires --key <PEM public key file>")
		}
		return sign.NewEcdsaVerifier(mustLoadEcdsaPublicKey(keyArg))
	default:
		fail("unsupported signature type %s", d.SigType)
		return nil
	}
}
