package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the ndncore root command: one group of commands for
// building/inspecting packets by hand, grounded on the teacher's
// tools/sec.CmdSec group-of-subcommands shape.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ndncore",
		Short: "Inspect and hand-build NDN Interest/Data packets",
		Long: `ndncore is a debugging tool over the forwarder core packet codec and
signing layer. It is not a forwarder daemon: it has no face table, no
network transport, and does not run the dispatch loop in package engine.`,
	}
	root.AddGroup(&cobra.Group{ID: "packet", Title: "Packet Tools"})

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newVerifyCmd())
	return root
}
