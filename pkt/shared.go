package pkt

import "sync/atomic"

// SharedBlock is a reference-counted owning wrapper around an encoded
// packet. It is the only piece of cross-context shared state in this
// module (spec.md §5): PIT entries, CS entries, and in-flight DATA/TIMEOUT
// messages each hold exactly one retain on the SharedBlock they reference.
//
// The refcounting core is adapted from the teacher's
// std/types/arc generic ArcPool (retain == Inc, release == Dec reaching
// zero) but specialized to own a single []byte the way the original C
// ndn_shared_block_t does, rather than pooling arbitrary objects.
type SharedBlock struct {
	buf atomic.Pointer[[]byte]
	ref atomic.Int32
}

// NewSharedBlockCopy allocates a new SharedBlock holding a copy of b's
// bytes. The caller's Block remains valid and independent afterward.
func NewSharedBlockCopy(b Block) (*SharedBlock, error) {
	if len(b) == 0 {
		return nil, InvalidArgument("cannot create a SharedBlock from an empty or nil block")
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	sb := &SharedBlock{}
	sb.buf.Store(&cp)
	sb.ref.Store(1)
	return sb, nil
}

// NewSharedBlockMove allocates a new SharedBlock that takes ownership of
// *owned, nulling the caller's descriptor so it cannot be reused by
// accident. No copy is made.
func NewSharedBlockMove(owned *[]byte) (*SharedBlock, error) {
	if owned == nil || len(*owned) == 0 {
		return nil, InvalidArgument("cannot move an empty or nil buffer into a SharedBlock")
	}
	buf := *owned
	sb := &SharedBlock{}
	sb.buf.Store(&buf)
	sb.ref.Store(1)
	*owned = nil
	return sb, nil
}

// Retain increments the reference count and returns sb, so that
//
//	pit.interest = in.Retain()
//
// reads as "take a retain, hand it to the PIT".
//
// Retain must only be called in a context that already holds a retain on
// sb (spec.md §5): it is the caller's job never to retain a block that
// might be concurrently released to zero by someone else.
func (sb *SharedBlock) Retain() *SharedBlock {
	sb.ref.Add(1)
	return sb
}

// Release decrements the reference count. The last Release frees the
// underlying byte range; the SharedBlock itself must not be used again
// afterward.
func (sb *SharedBlock) Release() {
	if sb.ref.Add(-1) == 0 {
		sb.buf.Store(nil)
	}
}

// RefCount returns the current reference count. Exposed for tests of the
// ledger-style invariant in spec.md §8 ("no SharedBlock is freed while any
// retain outstanding").
func (sb *SharedBlock) RefCount() int32 {
	return sb.ref.Load()
}

// Block returns a borrowed view of the encoded bytes. The returned Block is
// only valid as long as the caller holds a retain on sb; it must not be
// used after the matching Release.
func (sb *SharedBlock) Block() Block {
	p := sb.buf.Load()
	if p == nil {
		return nil
	}
	return Block(*p)
}

// Len returns the length of the encoded bytes, or 0 if sb has been fully
// released.
func (sb *SharedBlock) Len() int {
	return len(sb.Block())
}
