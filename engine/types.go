// Package engine wires pkt, sign and table into a runnable forwarder
// context: the single-threaded dispatch loop of spec.md §2/§5, driven by
// a mailbox and a software timer wheel. The face table, the network send
// primitive, and the RNG source stay interfaces-only external
// collaborators (spec.md §1); the module ships only reference in-memory
// implementations of the two the engine must actually run against to be
// testable end to end: TimerWheel in this package, and the Mailbox in
// internal/mailbox.
package engine

import (
	"time"

	"github.com/named-data/ndncore/pkt"
	"github.com/named-data/ndncore/table"
)

// NetworkSender is how the forwarder hands an encoded packet to a face. It
// is deliberately the bare minimum: no connection state, no addressing
// beyond a FaceID, matching spec.md's "face table is out of scope, an
// interface only" framing.
type NetworkSender interface {
	Send(face table.FaceRef, data pkt.Block) error
}

// RNG is the host randomness source used to mint Interest nonces and
// (indirectly, via crypto/rand in package sign) key material. It is
// structurally identical to pkt.RandSource; kept as its own named
// interface here because spec.md lists it as one of the engine's external
// collaborators.
type RNG interface {
	Uint32() uint32
}

// TimerService is how the forwarder arms a PIT entry's expiration. Set
// registers that token should fire at at; firing is delivered back into
// the forwarder as a TimerFired message over its Mailbox, never as a
// direct callback, so the dispatch loop remains the only place PIT/CS
// state changes (spec.md §5).
type TimerService interface {
	Set(name pkt.Name, token uint64, at time.Time)
}

// Message is anything the forwarder's Mailbox can carry. The three
// concrete kinds below are exactly the three inputs spec.md §2 describes:
// an Interest or Data arriving on a face, and a PIT entry's timer firing.
type Message interface {
	isMessage()
}

// InterestArrival is an Interest decoded off of face, still holding one
// retain on its encoded form.
type InterestArrival struct {
	Face     table.FaceRef
	Interest pkt.Interest
	Block    *pkt.SharedBlock
}

func (InterestArrival) isMessage() {}

// DataArrival is a Data packet decoded off of face, still holding one
// retain on its encoded form.
type DataArrival struct {
	Face  table.FaceRef
	Data  pkt.Data
	Block *pkt.SharedBlock
}

func (DataArrival) isMessage() {}

// TimerFired is delivered by a TimerService implementation when a
// previously Set deadline passes.
type TimerFired struct {
	Name  pkt.Name
	Token uint64
}

func (TimerFired) isMessage() {}
