package table

import "fmt"

// ErrExists reports a PIT duplicate: the same Interest name arriving again
// on a face that already has a pending entry for it. Per spec.md §7 this
// is reported, not fatal — PIT.Add still succeeds, aggregating as usual.
type ErrExists struct {
	Reason string
}

func (e ErrExists) Error() string {
	return "already exists: " + e.Reason
}

// Exists constructs an ErrExists with a formatted reason.
func Exists(format string, args ...any) error {
	return ErrExists{Reason: fmt.Sprintf(format, args...)}
}

// ErrLifetimeExceeded reports an Interest whose lifetime exceeds the PIT's
// configured ceiling. Per spec.md §4.6 step 1 this is fatal to the add:
// unlike ErrExists, PIT.Add admits no entry and arms no timer when it
// returns this error.
type ErrLifetimeExceeded struct {
	Reason string
}

func (e ErrLifetimeExceeded) Error() string {
	return "lifetime exceeded: " + e.Reason
}

// LifetimeExceeded constructs an ErrLifetimeExceeded with a formatted
// reason.
func LifetimeExceeded(format string, args ...any) error {
	return ErrLifetimeExceeded{Reason: fmt.Sprintf(format, args...)}
}
