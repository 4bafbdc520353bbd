package table

import (
	"time"

	"github.com/named-data/ndncore/pkt"
)

// csEntry is one cached Data packet: its name, a retained handle on its
// encoded form, and enough bookkeeping to expire it once its freshness
// period lapses (a supplement over the original ndn_cs_entry_t, which had
// no freshness tracking at all — spec.md's expansion adds it back from the
// real NDN Data semantics MetaInfo.FreshnessPeriod already carries).
type csEntry struct {
	name      pkt.Name
	data      *pkt.SharedBlock
	cachedAt  time.Time
	freshness time.Duration
}

// isFresh reports whether e's FreshnessPeriod (if any) has not yet
// elapsed. Data with no FreshnessPeriod is "non-fresh" from the moment it
// is cached, matching real NDN Data semantics: it can still satisfy
// Interests that don't set MustBeFresh, but never one that does.
func (e *csEntry) isFresh(now time.Time) bool {
	return e.freshness > 0 && now.Before(e.cachedAt.Add(e.freshness))
}

// CSConfig configures a CS (spec.md §9 open question: the original has no
// fixed-size bound since it's a static embedded array; this module adds an
// explicit, optional capacity/freshness policy instead).
type CSConfig struct {
	// Capacity bounds the number of cached entries; <= 0 means unbounded.
	// The oldest entry is evicted whenever an insert would exceed it.
	Capacity int
	// HonorFreshness, when true, makes Match refuse to satisfy a
	// MustBeFresh Interest with an entry past its FreshnessPeriod, and
	// purges such entries as they're encountered during a scan. When
	// false, freshness is ignored entirely (every cached Data can satisfy
	// every Interest, regardless of MustBeFresh) — the original C
	// behavior.
	HonorFreshness bool
}

// CS is the Content Store (spec.md §4.7): cached Data kept newest-first, so
// that scanning for a match also prefers the freshest copy on a tie,
// mirroring ndn_cs_add's prepend-to-head insertion.
//
// Like PIT, CS is only ever touched by the forwarder's single dispatch
// goroutine.
type CS struct {
	cfg     CSConfig
	entries []*csEntry
}

// NewCS constructs an empty CS governed by cfg.
func NewCS(cfg CSConfig) *CS {
	return &CS{cfg: cfg}
}

// Len returns the number of cached entries, including any not yet purged
// past their freshness period.
func (c *CS) Len() int { return len(c.entries) }

// Insert caches data under name, retaining it. If an entry for the exact
// same name already sits at the head (the most recently inserted), it is
// replaced rather than duplicated and ErrExists is returned alongside the
// otherwise-successful insert (spec.md §7 Exists is general-purpose: this
// is its CS analogue of the PIT's duplicate-face report). If the store is
// at capacity, the oldest entry is evicted and released.
func (c *CS) Insert(name pkt.Name, data *pkt.SharedBlock, now time.Time, freshness time.Duration) error {
	var dup error
	if len(c.entries) > 0 && c.entries[0].name.Equal(name) {
		c.entries[0].data.Release()
		c.entries = c.entries[1:]
		dup = Exists("data already cached for name %q", name.String())
	}

	entry := &csEntry{
		name:      name,
		data:      data.Retain(),
		cachedAt:  now,
		freshness: freshness,
	}
	c.entries = append(c.entries, nil)
	copy(c.entries[1:], c.entries)
	c.entries[0] = entry

	if c.cfg.Capacity > 0 && len(c.entries) > c.cfg.Capacity {
		last := len(c.entries) - 1
		c.entries[last].data.Release()
		c.entries = c.entries[:last]
	}
	return dup
}

// Match scans for the first cached Data whose name is equal to, or a
// descendant of, interestName — the CS equivalent of "does the Interest
// name cover this Data name" — satisfying mustBeFresh per cfg.HonorFreshness,
// and returns a fresh retain on it. When cfg.HonorFreshness is set,
// freshness-expired entries are released and dropped from the store as
// they're encountered, mirroring ndn_cs_match's linear scan but keeping
// the store from silently growing unbounded on repeated misses.
func (c *CS) Match(interestName pkt.Name, mustBeFresh bool, now time.Time) (*pkt.SharedBlock, bool) {
	if !c.cfg.HonorFreshness {
		for _, e := range c.entries {
			if r := interestName.Compare(e.name); r.IsPrefixOrEqual() {
				return e.data.Retain(), true
			}
		}
		return nil, false
	}

	live := c.entries[:0]
	var found *pkt.SharedBlock
	for _, e := range c.entries {
		if e.freshness > 0 && !e.isFresh(now) {
			e.data.Release()
			continue
		}
		live = append(live, e)
		if found == nil && (!mustBeFresh || e.isFresh(now)) {
			if r := interestName.Compare(e.name); r.IsPrefixOrEqual() {
				found = e.data.Retain()
			}
		}
	}
	c.entries = live
	return found, found != nil
}
