// Package table implements the forwarder's two name-indexed tables: the
// Pending Interest Table (pit.go) and the Content Store (cs.go). Both hold
// pkt.Interest/pkt.Data already decoded at arrival time, so matching is
// done via in-memory pkt.Name.Compare/Equal rather than re-walking encoded
// blocks — the equivalent of the original C sys/net/ndn/pit.c and cs.c's
// name comparisons, just against the parsed form instead of the wire form
// (spec.md §4.6, §4.7). pkt.CompareBlocks and its block-level siblings
// exist for callers that only ever hold an encoded block (e.g. a face
// implementation peeking a name before fully decoding a packet).
package table

// FaceKind distinguishes a network face, which a timeout never notifies,
// from an application face, which does get a TIMEOUT callback (spec.md
// §4.6).
type FaceKind int

const (
	// FaceKindNetwork is a face connected to another forwarder. It matches
	// the original C NDN_FACE_NETDEV.
	FaceKindNetwork FaceKind = iota
	// FaceKindApp is a face connected to a local consumer or producer. It
	// matches the original C NDN_FACE_APP.
	FaceKindApp
)

func (k FaceKind) String() string {
	switch k {
	case FaceKindNetwork:
		return "network"
	case FaceKindApp:
		return "app"
	default:
		return "unknown"
	}
}

// FaceID identifies a face across the forwarder. It is assigned by
// whatever owns face registration (outside this package's scope); table
// only ever compares IDs for equality.
type FaceID uint64

// FaceRef is the minimal description of a face the PIT and CS need to
// track: who to forward to, and whether that face wants timeout
// notifications.
type FaceRef struct {
	ID   FaceID
	Kind FaceKind
}
