package main

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/named-data/ndncore/pkt"
	"github.com/named-data/ndncore/sign"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		GroupID: "packet",
		Use:     "encode",
		Short:   "Build a hex-encoded Interest or Data packet",
	}
	cmd.AddCommand(newEncodeInterestCmd())
	cmd.AddCommand(newEncodeDataCmd())
	return cmd
}

func newEncodeInterestCmd() *cobra.Command {
	var name string
	var lifetime time.Duration
	var mustBeFresh bool

	cmd := &cobra.Command{
		Use:     "interest --name NAME [--lifetime DURATION]",
		Short:   "Build a hex-encoded Interest",
		Example: `  ndncore encode interest --name /a/b --lifetime 4s`,
		Args:    cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			n, err := pkt.NameFromStr(name)
			if err != nil {
				fail("invalid name %q: %v", name, err)
			}

			interest := pkt.Interest{Name: n}
			if lifetime > 0 {
				interest.Lifetime.Set(lifetime)
			}
			if mustBeFresh {
				interest.Selectors = mustBeFreshSelectors()
			}

			out, err := interest.Encode(cryptoRNG{})
			if err != nil {
				fail("encode failed: %v", err)
			}
			fmt.Println(hex.EncodeToString(out))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Interest name, e.g. /a/b/c")
	cmd.Flags().DurationVar(&lifetime, "lifetime", 0, "InterestLifetime, e.g. 4s")
	cmd.Flags().BoolVar(&mustBeFresh, "must-be-fresh", false, "set the MustBeFresh selector")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// mustBeFreshSelectors builds the minimal Selectors TLV this tool ever
// writes: just a MustBeFresh flag, encoded so pkt.Interest.ParseSelectors
// can round-trip it.
func mustBeFreshSelectors() pkt.Block {
	flag := make([]byte, 4)
	f1, _ := pkt.WriteVarNum(flag, pkt.TypeMustBeFresh)
	f2, _ := pkt.WriteVarNum(flag[f1:], pkt.VarNum(0))
	inner := f1 + f2

	hdr := make([]byte, 8)
	h1, _ := pkt.WriteVarNum(hdr, pkt.TypeSelectors)
	h2, _ := pkt.WriteVarNum(hdr[h1:], pkt.VarNum(inner))

	out := make([]byte, 0, h1+h2+inner)
	out = append(out, hdr[:h1+h2]...)
	out = append(out, flag[:inner]...)
	return pkt.Block(out)
}

func newEncodeDataCmd() *cobra.Command {
	var name, content, sigKind, keyArg string
	var freshness time.Duration

	cmd := &cobra.Command{
		Use:   "data --name NAME --content TEXT --sig digest|hmac|ecdsa [--key ...]",
		Short: "Build, sign, and print a hex-encoded Data packet",
		Example: `  ndncore encode data --name /a/b --content hello --sig digest
  ndncore encode data --name /a/b --content hello --sig hmac --key 00112233
  ndncore encode data --name /a/b --content hello --sig ecdsa --key alice.pem`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			n, err := pkt.NameFromStr(name)
			if err != nil {
				fail("invalid name %q: %v", name, err)
			}

			data := pkt.Data{Name: n, Content: []byte(content)}
			if freshness > 0 {
				data.Meta.FreshnessPeriod.Set(freshness)
			}

			signer := mustLoadSigner(sigKind, keyArg)
			out, err := data.Encode(signer)
			if err != nil {
				fail("encode failed: %v", err)
			}
			fmt.Println(hex.EncodeToString(out))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Data name, e.g. /a/b/c")
	cmd.Flags().StringVar(&content, "content", "", "Content payload")
	cmd.Flags().DurationVar(&freshness, "freshness", 0, "FreshnessPeriod, e.g. 10s")
	cmd.Flags().StringVar(&sigKind, "sig", "digest", "signature algorithm: digest, hmac, or ecdsa")
	cmd.Flags().StringVar(&keyArg, "key", "", "hmac: hex shared key; ecdsa: PEM private key file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// mustLoadSigner builds a pkt.Signer from --sig/--key, exiting the process
// on any configuration error — mirroring the teacher's tools/sec pattern
// of reporting to stderr and os.Exit(1) rather than returning an error up
// through cobra.
func mustLoadSigner(kind, keyArg string) pkt.Signer {
	switch kind {
	case "digest":
		return sign.NewDigestSigner()
	case "hmac":
		if keyArg == "" {
			fail("--sig hmac requires --key <hex shared key>")
		}
		key, err := hex.DecodeString(keyArg)
		if err != nil {
			fail("invalid hex hmac key: %v", err)
		}
		return sign.NewHmacSigner(key)
	case "ecdsa":
		if keyArg == "" {
			fail("--sig ecdsa requires --key <PEM private key file>")
		}
		priv := mustLoadEcdsaKey(keyArg)
		return sign.NewEcdsaSigner(priv, nil)
	default:
		fail("unsupported --sig %q (want digest, hmac, or ecdsa)", kind)
		return nil
	}
}

func mustLoadEcdsaKey(path string) *ecdsa.PrivateKey {
	raw, err := os.ReadFile(path)
	if err != nil {
		fail("reading %s: %v", path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		fail("%s is not a valid PEM file", path)
	}
	priv, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		fail("%s is not an EC PRIVATE KEY: %v", path, err)
	}
	return priv
}

// mustLoadEcdsaPublicKey loads a PEM-encoded public key (an "EC PUBLIC
// KEY" or generic PKIX block) for --sig ecdsa verification.
func mustLoadEcdsaPublicKey(path string) *ecdsa.PublicKey {
	raw, err := os.ReadFile(path)
	if err != nil {
		fail("reading %s: %v", path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		fail("%s is not a valid PEM file", path)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		fail("%s is not a PKIX public key: %v", path, err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		fail("%s is not an ECDSA public key", path)
	}
	return ecPub
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
