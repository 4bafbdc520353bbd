package main

import (
	"fmt"
	"os"
	"strings"
)

// statusPrinter right-aligns a field name to a fixed width before printing
// "key=value", adapted from the teacher's toolutils.StatusPrinter (used
// there to print forwarder-status fields; here to print decoded packet
// fields).
type statusPrinter struct {
	file    *os.File
	padding int
}

func (s statusPrinter) print(key string, value any) {
	pad := s.padding - len(key)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(s.file, "%s%s=%v\n", strings.Repeat(" ", pad), key, value)
}
