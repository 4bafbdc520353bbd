// Command ndncore is a small inspection tool over the forwarder core's
// packet codec and signing layer: build an Interest or Data by hand,
// decode one back to its fields, or re-verify a Data's signature. It has
// no face table or network transport of its own (spec.md §1's out-of-scope
// list) — those stay interfaces the core depends on, not something this
// tool stands up.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
