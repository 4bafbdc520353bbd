package table

import (
	"time"

	"github.com/named-data/ndncore/pkt"
)

// MaxLifetime is the longest Interest lifetime the PIT will honor: 2^22
// milliseconds (~69.9 minutes), matching the original C ndn_pit_add's
// lifetime cap. pkt.Interest.Encode already rejects lifetimes beyond this;
// PIT additionally rejects defensively for Interests that reached it by
// some other route (e.g. decoded off the wire from a non-conformant peer),
// matching the original's reject-don't-truncate behavior (spec.md §4.6
// step 1, §8).
const MaxLifetime = (1 << 22) * time.Millisecond

// pitEntry tracks one pending Interest: its name and Selectors aggregation
// key (for prefix matching and dedup), the faces it was received on, a
// retain on its encoded form, and the generational token that lets a stale
// timer message be told apart from a freshly re-armed one.
//
// spec.md §9 flags the original's "compare the fired timer message's
// pointer identity against the entry" trick as not portable to a language
// without stable interior pointers; this token is the fix.
type pitEntry struct {
	name     pkt.Name
	nameHash uint64
	key      string
	faces    []FaceRef
	interest *pkt.SharedBlock
	token    uint64
	expireAt time.Time
}

// AddOutcome reports what PIT.Add did: whether an existing pending
// Interest absorbed this one (aggregation) or a new entry was created, the
// token/deadline the caller must register with its timer service, and any
// non-fatal condition worth logging (spec.md §7 Exists).
type AddOutcome struct {
	Aggregated bool
	Token      uint64
	ExpireAt   time.Time
	Err        error
}

// PitMatch is one PIT entry satisfied by an arriving Data packet: the faces
// to forward the Data to, and the retained Interest that was pending.
// Interest is handed to the caller with one retain outstanding — the
// caller must Release it once done (e.g. after deriving any reply send
// from it).
type PitMatch struct {
	Faces    []FaceRef
	Interest *pkt.SharedBlock
}

// PIT is the Pending Interest Table (spec.md §4.6): one entry per distinct
// pending Interest name+Selectors pair, aggregating incoming faces for
// duplicate Interests and tracking the forwarder's own timer for each.
//
// Entries are indexed by their generational token for O(1) timeout lookup,
// and by pkt.Name.Hash() for O(1)-average aggregation and Data-match
// lookup (spec.md §9: "implementations may index by name hash"), with a
// full name/Selectors comparison as the linear fallback within a hash
// bucket to resolve collisions.
//
// PIT is not safe for concurrent use: the forwarder's single dispatch
// goroutine is the only caller, by design (spec.md §2).
type PIT struct {
	maxLifetime time.Duration
	byToken     map[uint64]*pitEntry
	byHash      map[uint64][]*pitEntry
	nextToken   uint64
}

// PITConfig configures a PIT's lifetime ceiling.
type PITConfig struct {
	// MaxLifetime overrides the default 2^22ms ceiling; <= 0 means use
	// MaxLifetime (the package constant).
	MaxLifetime time.Duration
}

// New constructs an empty PIT governed by cfg.
func New(cfg PITConfig) *PIT {
	max := cfg.MaxLifetime
	if max <= 0 || max > MaxLifetime {
		max = MaxLifetime
	}
	return &PIT{
		maxLifetime: max,
		byToken:     make(map[uint64]*pitEntry),
		byHash:      make(map[uint64][]*pitEntry),
	}
}

// Len returns the number of distinct pending Interests.
func (p *PIT) Len() int { return len(p.byToken) }

// Add records an Interest arriving on face in. If an Interest of the exact
// same name and Selectors (mustBeFresh, exclude) is already pending, in is
// appended to its face list (de-duplicated) instead of creating a new
// entry — full canonical Name equality is used for this match, not the
// original's truncated memcmp (spec.md §9, explicitly called out as a bug
// not to replicate). If in was already on that entry's face list, Err is
// set to a table.ErrExists — reported, but Add still succeeds. Either way,
// a hit resets the entry's deadline to now+lifetime (spec.md §4.6 step 3:
// "reset the entry's timer to the new lifetime"); the caller must re-arm
// its timer service to the returned ExpireAt regardless of Aggregated.
//
// If lifetime exceeds the PIT's configured ceiling, Add admits no entry
// and arms no timer: Err is a table.ErrLifetimeExceeded and the rest of
// the outcome is zero (spec.md §4.6 step 1: "reject Interests with
// lifetime greater than roughly 70 minutes").
//
// interest is retained by the PIT only when a new entry is created; the
// caller retains ownership of its own reference either way.
func (p *PIT) Add(name pkt.Name, mustBeFresh bool, exclude []pkt.Component, interest *pkt.SharedBlock, in FaceRef, now time.Time, lifetime time.Duration) AddOutcome {
	if lifetime > p.maxLifetime {
		return AddOutcome{Err: LifetimeExceeded("interest lifetime %s exceeds the %s ceiling", lifetime, p.maxLifetime)}
	}
	nameHash := name.Hash()
	key := aggregationKey(name, mustBeFresh, exclude)

	for _, e := range p.byHash[nameHash] {
		if e.key == key {
			faces, added := addFace(e.faces, in)
			e.faces = faces
			e.expireAt = now.Add(lifetime)
			var err error
			if !added {
				err = Exists("face %d already pending for name %q", in.ID, name.String())
			}
			return AddOutcome{Aggregated: true, Token: e.token, ExpireAt: e.expireAt, Err: err}
		}
	}

	token := p.nextToken
	p.nextToken++
	expireAt := now.Add(lifetime)
	e := &pitEntry{
		name:     name,
		nameHash: nameHash,
		key:      key,
		faces:    []FaceRef{in},
		interest: interest.Retain(),
		token:    token,
		expireAt: expireAt,
	}
	p.byToken[token] = e
	p.byHash[nameHash] = append(p.byHash[nameHash], e)
	return AddOutcome{Aggregated: false, Token: token, ExpireAt: expireAt}
}

// Timeout fires when the timer service reports token's deadline has
// passed. It returns the pending entry's application faces (network faces
// are never notified of a timeout, spec.md §4.6) and a still-retained
// handle on the Interest, which the caller must eventually Release.
//
// If no entry currently owns token — it was already satisfied by Data, or
// the name+Selectors pair was re-added and got a fresh token — ok is
// false and there is nothing to release.
func (p *PIT) Timeout(token uint64) (appFaces []FaceRef, interest *pkt.SharedBlock, ok bool) {
	e, exists := p.byToken[token]
	if !exists {
		return nil, nil, false
	}
	p.remove(e)
	for _, f := range e.faces {
		if f.Kind == FaceKindApp {
			appFaces = append(appFaces, f)
		}
	}
	return appFaces, e.interest, true
}

// DataMatch finds every pending Interest whose name is a prefix of, or
// equal to, dataName, removes them from the table, and returns their faces
// and retained Interest handles for the caller to forward against and then
// Release (spec.md §4.6/§4.7, mirroring ndn_pit_match_data).
//
// Lookup walks dataName's own prefixes (one candidate length at a time)
// and probes the hash index for each — a pending Interest can only ever
// be named by some prefix of dataName — rather than scanning every live
// entry, per the hash-index design note in spec.md §9.
func (p *PIT) DataMatch(dataName pkt.Name) []PitMatch {
	var matches []PitMatch
	for k := 0; k <= len(dataName); k++ {
		prefix := dataName[:k]
		h := prefix.Hash()
		for _, e := range p.byHash[h] {
			if e.name.Equal(prefix) {
				matches = append(matches, PitMatch{Faces: e.faces, Interest: e.interest})
			}
		}
	}
	// Removal happens in a second pass over the same prefixes: mutating
	// byHash while the match loop above ranges over it would be unsafe.
	for k := 0; k <= len(dataName); k++ {
		prefix := dataName[:k]
		h := prefix.Hash()
		kept := p.byHash[h][:0]
		for _, e := range p.byHash[h] {
			if e.name.Equal(prefix) {
				delete(p.byToken, e.token)
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(p.byHash, h)
		} else {
			p.byHash[h] = kept
		}
	}
	return matches
}

func (p *PIT) remove(e *pitEntry) {
	delete(p.byToken, e.token)
	bucket := p.byHash[e.nameHash]
	for i, c := range bucket {
		if c == e {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(p.byHash, e.nameHash)
	} else {
		p.byHash[e.nameHash] = bucket
	}
}

func addFace(faces []FaceRef, in FaceRef) (result []FaceRef, added bool) {
	for _, f := range faces {
		if f.ID == in.ID {
			return faces, false
		}
	}
	return append(faces, in), true
}

// aggregationKey folds a Name and its MustBeFresh/Exclude Selectors into a
// single string key: two Interests only aggregate into one PIT entry when
// all three match (spec.md §9's explicit ask to widen aggregation beyond
// bare name equality). Entries sharing a name hash still disambiguate on
// this key within their bucket.
func aggregationKey(name pkt.Name, mustBeFresh bool, exclude []pkt.Component) string {
	nameBytes, err := name.Bytes()
	if err != nil {
		// An un-encodable name (empty, or an empty component) can never
		// have reached the PIT past Interest decoding; treat it as its
		// own unique, never-matching key rather than panicking.
		return "\x00invalid"
	}
	key := make([]byte, 0, len(nameBytes)+8)
	key = append(key, nameBytes...)
	if mustBeFresh {
		key = append(key, 0x01)
	} else {
		key = append(key, 0x00)
	}
	for _, c := range exclude {
		key = append(key, c.Bytes()...)
	}
	return string(key)
}
