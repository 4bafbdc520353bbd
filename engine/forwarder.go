package engine

import (
	"errors"
	"time"

	"github.com/named-data/ndncore/internal/mailbox"
	"github.com/named-data/ndncore/log"
	"github.com/named-data/ndncore/pkt"
	"github.com/named-data/ndncore/table"
)

// RouteFunc decides which faces an Interest should be forwarded to, given
// the face it arrived on. The forwarding strategy itself is out of scope
// for this module (spec.md §1's face table/strategy exclusion); Forwarder
// just needs some pluggable hook to drive end-to-end tests, so a nil
// RouteFunc means "never forward, PIT/CS bookkeeping only."
type RouteFunc func(name pkt.Name, in table.FaceRef) []table.FaceRef

// ForwarderConfig wires a Forwarder's collaborators together.
type ForwarderConfig struct {
	PIT        *table.PIT
	CS         *table.CS
	Sender     NetworkSender
	Timers     TimerService
	RNG        RNG
	Route      RouteFunc
	MailboxCap int
	// DefaultFreshness is applied to cached Data that carries no
	// FreshnessPeriod of its own. Zero preserves the CS's own default
	// (non-fresh from the moment it's cached).
	DefaultFreshness time.Duration
}

// Forwarder is the single cooperative executor of spec.md §2/§5: one
// goroutine draining its Mailbox and dispatching Interest/Data/timer
// events against the PIT and CS. It owns no exported mutable state beyond
// the tables it wraps, so every other goroutine can only reach it by
// Mailbox().TrySend — the concurrency discipline of spec.md §5 is enforced
// by construction.
type Forwarder struct {
	pit              *table.PIT
	cs               *table.CS
	sender           NetworkSender
	timers           TimerService
	rng              RNG
	route            RouteFunc
	defaultFreshness time.Duration
	mb               *mailbox.Mailbox[Message]
}

// NewForwarder constructs a Forwarder from cfg.
func NewForwarder(cfg ForwarderConfig) *Forwarder {
	return &Forwarder{
		pit:              cfg.PIT,
		cs:               cfg.CS,
		sender:           cfg.Sender,
		timers:           cfg.Timers,
		rng:              cfg.RNG,
		route:            cfg.Route,
		defaultFreshness: cfg.DefaultFreshness,
		mb:               mailbox.New[Message](cfg.MailboxCap),
	}
}

// String names this module for log.* calls.
func (f *Forwarder) String() string { return "engine.Forwarder" }

// Mailbox returns the inbox other goroutines (faces, the timer wheel) send
// Messages to.
func (f *Forwarder) Mailbox() *mailbox.Mailbox[Message] { return f.mb }

// RNG returns the host randomness source, for an application face that
// originates new Interests to share rather than seed its own.
func (f *Forwarder) RNG() RNG { return f.rng }

// Run blocks, draining the Mailbox and dispatching each Message, until
// stop is closed.
func (f *Forwarder) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		msg := f.mb.Receive()
		switch m := msg.(type) {
		case InterestArrival:
			f.handleInterest(m)
		case DataArrival:
			f.handleData(m)
		case TimerFired:
			f.handleTimeout(m)
		}
	}
}

func (f *Forwarder) handleInterest(m InterestArrival) {
	name := m.Interest.GetName()
	mustBeFresh, exclude, err := m.Interest.ParseSelectors()
	if err != nil {
		log.Warn(f, "dropping interest with malformed selectors", "name", name.String(), "err", err)
		m.Block.Release()
		return
	}

	if data, ok := f.cs.Match(name, mustBeFresh, time.Now()); ok {
		if err := f.sender.Send(m.Face, data.Block()); err != nil {
			log.Warn(f, "content store hit but send failed", "name", name.String(), "err", err)
		}
		data.Release()
		m.Block.Release()
		return
	}

	outcome := f.pit.Add(name, mustBeFresh, exclude, m.Block, m.Face, time.Now(), m.Interest.GetLifetime())
	if outcome.Err != nil {
		var exceeded table.ErrLifetimeExceeded
		if errors.As(outcome.Err, &exceeded) {
			log.Warn(f, "dropping interest with excessive lifetime", "name", name.String(), "err", outcome.Err)
			m.Block.Release()
			return
		}
		log.Info(f, "pit add reported a non-fatal condition", "name", name.String(), "err", outcome.Err)
	}

	// Re-arming uses the same token whether this was a fresh entry or a
	// hit: the entry's deadline always moves to outcome.ExpireAt (spec.md
	// §4.6 step 3), and TimerWheel.Set updates an already-armed token's
	// position instead of double-arming it.
	f.timers.Set(name, outcome.Token, outcome.ExpireAt)

	if !outcome.Aggregated {
		if f.route != nil {
			for _, out := range f.route(name, m.Face) {
				if out.ID == m.Face.ID {
					continue
				}
				if err := f.sender.Send(out, m.Block.Block()); err != nil {
					log.Warn(f, "interest forward failed", "name", name.String(), "face", out.ID, "err", err)
				}
			}
		}
	}
	m.Block.Release()
}

func (f *Forwarder) handleData(m DataArrival) {
	name := m.Data.GetName()
	matches := f.pit.DataMatch(name)
	if len(matches) == 0 {
		m.Block.Release()
		return
	}

	freshness, ok := m.Data.GetMetaInfo().FreshnessPeriod.Get()
	if !ok {
		freshness = f.defaultFreshness
	}
	if err := f.cs.Insert(name, m.Block, time.Now(), freshness); err != nil {
		log.Info(f, "cs insert reported a non-fatal condition", "name", name.String(), "err", err)
	}

	for _, match := range matches {
		for _, face := range match.Faces {
			if err := f.sender.Send(face, m.Block.Block()); err != nil {
				log.Warn(f, "data forward failed", "name", name.String(), "face", face.ID, "err", err)
			}
		}
		match.Interest.Release()
	}
	m.Block.Release()
}

func (f *Forwarder) handleTimeout(m TimerFired) {
	appFaces, interest, ok := f.pit.Timeout(m.Token)
	if !ok {
		return
	}
	for _, face := range appFaces {
		retained := interest.Retain()
		if err := f.sender.Send(face, retained.Block()); err != nil {
			log.Warn(f, "timeout notification failed", "face", face.ID, "err", err)
		}
		retained.Release()
	}
	interest.Release()
}
