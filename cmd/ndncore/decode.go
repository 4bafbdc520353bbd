package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/named-data/ndncore/pkt"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		GroupID: "packet",
		Use:     "decode HEX",
		Short:   "Parse a hex-encoded Interest or Data packet and print its fields",
		Example: `  ndncore decode 050b07030801610a0401020304`,
		Args:    cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				fail("invalid hex input: %v", err)
			}
			decodeAndPrint(pkt.Block(raw))
		},
	}
}

// decodeAndPrint peeks the outer TLV type to decide whether raw holds an
// Interest or a Data packet, then prints its fields.
func decodeAndPrint(raw pkt.Block) {
	typ, _, err := pkt.ReadVarNum(raw)
	if err != nil {
		fail("malformed packet: %v", err)
	}

	switch typ {
	case pkt.TypeInterest:
		i, err := pkt.InterestFromBlock(raw)
		if err != nil {
			fail("malformed interest: %v", err)
		}
		printInterest(i)
	case pkt.TypeData:
		d, err := pkt.DataFromBlock(raw)
		if err != nil {
			fail("malformed data: %v", err)
		}
		printData(d)
	default:
		fail("unrecognized outer TLV type %d (want Interest=%d or Data=%d)", typ, pkt.TypeInterest, pkt.TypeData)
	}
}

func printInterest(i pkt.Interest) {
	fmt.Println("Interest")
	p := statusPrinter{file: os.Stdout, padding: 12}
	p.print("Name", i.Name.String())
	if nonce, ok := i.GetNonce(); ok {
		p.print("Nonce", fmt.Sprintf("%08x", nonce))
	}
	p.print("Lifetime", i.GetLifetime())
	mustBeFresh, exclude, err := i.ParseSelectors()
	if err != nil {
		p.print("Selectors", fmt.Sprintf("malformed (%v)", err))
		return
	}
	if len(i.Selectors) > 0 {
		p.print("MustBeFresh", mustBeFresh)
		p.print("Exclude", fmt.Sprintf("%d component(s)", len(exclude)))
	}
}

func printData(d pkt.Data) {
	fmt.Println("Data")
	p := statusPrinter{file: os.Stdout, padding: 15}
	p.print("Name", d.Name.String())
	p.print("SigType", d.SigType)
	p.print("Content", fmt.Sprintf("%d byte(s)", len(d.Content)))
	if fp, ok := d.Meta.FreshnessPeriod.Get(); ok {
		p.print("Freshness", fp)
	}
	if kl, ok := d.GetKeyLocatorName(); ok {
		p.print("KeyLocator", kl.String())
	}
	p.print("SignatureValue", fmt.Sprintf("%d byte(s)", len(d.SignatureValue)))
}
