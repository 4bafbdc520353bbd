package pkt

import (
	"time"

	"github.com/named-data/ndncore/internal/optional"
)

// RandSource is the minimal randomness collaborator this package needs to
// mint Interest nonces. engine.RNG satisfies it; tests can supply a fixed
// sequence instead (spec.md §4.4: "the Nonce is generated randomly at
// encode time using the host's RNG").
type RandSource interface {
	Uint32() uint32
}

// MaxLifetimeMillis is the largest InterestLifetime this codec will encode:
// 2^22 milliseconds (~69.9 minutes). Anything beyond it is rejected at
// encode time (spec.md §8 boundary behavior), rather than silently
// truncated the way the original C pit_add's wraparound did.
const MaxLifetimeMillis = 1 << 22

// TypeMustBeFresh and TypeExclude are the two Selectors sub-fields this
// codec parses out of the otherwise-opaque Selectors block, so the PIT can
// fold them into its aggregation key (spec.md §9's explicit ask). Any
// other Selectors sub-field is preserved on the wire but not interpreted.
const (
	TypeExclude     VarNum = 0x10
	TypeMustBeFresh VarNum = 0x12
)

// Interest is the in-memory form of an Interest packet (spec.md §4.4):
//
//	Interest { Name, [Selectors], Nonce(4B), [InterestLifetime] }
//
// Selectors is carried opaquely: this codec round-trips it on the wire
// without interpreting its contents, since selector semantics are out of
// scope for the forwarder core (spec.md Non-goals).
type Interest struct {
	Name      Name
	Selectors Block
	Nonce     optional.Optional[uint32]
	Lifetime  optional.Optional[time.Duration]
}

// EncodingLength returns the size of the Interest TLV, including its own TL
// header. If Nonce is unset, it is sized as if present — Encode always
// mints one.
func (i Interest) EncodingLength() int {
	inner := TotalTLVLength(TypeName, i.Name.EncodingLength())
	if len(i.Selectors) > 0 {
		inner += len(i.Selectors)
	}
	inner += TotalTLVLength(TypeNonce, 4)
	if v, ok := i.Lifetime.Get(); ok {
		inner += TotalTLVLength(TypeInterestLifetime, NatEncodingLength(uint64(v.Milliseconds())))
	}
	return TotalTLVLength(TypeInterest, inner)
}

// Encode renders the Interest to a freshly allocated TLV block. If no Nonce
// has been pinned, rng mints one.
func (i Interest) Encode(rng RandSource) ([]byte, error) {
	if len(i.Name) == 0 {
		return nil, InvalidArgument("interest name must have at least one component")
	}
	if v, ok := i.Lifetime.Get(); ok && v.Milliseconds() > MaxLifetimeMillis {
		return nil, InvalidArgument("interest lifetime %s exceeds the %d ms ceiling", v, MaxLifetimeMillis)
	}
	nonce, ok := i.Nonce.Get()
	if !ok {
		if rng == nil {
			return nil, InvalidArgument("no nonce pinned and no RandSource supplied")
		}
		nonce = rng.Uint32()
	}

	nameLen, err := i.Name.TotalLength()
	if err != nil {
		return nil, err
	}
	inner := nameLen
	if len(i.Selectors) > 0 {
		inner += len(i.Selectors)
	}
	inner += TotalTLVLength(TypeNonce, 4)
	if v, ok := i.Lifetime.Get(); ok {
		inner += TotalTLVLength(TypeInterestLifetime, NatEncodingLength(uint64(v.Milliseconds())))
	}
	total := TotalTLVLength(TypeInterest, inner)

	buf := make([]byte, total)
	p1, _ := WriteVarNum(buf, TypeInterest)
	p2, _ := WriteVarNum(buf[p1:], VarNum(inner))
	pos := p1 + p2

	w, err := i.Name.EncodeInto(buf[pos:])
	if err != nil {
		return nil, err
	}
	pos += w

	if len(i.Selectors) > 0 {
		pos += copy(buf[pos:], i.Selectors)
	}

	tp, _ := WriteVarNum(buf[pos:], TypeNonce)
	lp, _ := WriteVarNum(buf[pos+tp:], VarNum(4))
	_, _ = WriteNat(buf[pos+tp+lp:], uint64(nonce))
	pos += tp + lp + 4

	if v, ok := i.Lifetime.Get(); ok {
		ms := uint64(v.Milliseconds())
		n := NatEncodingLength(ms)
		tp, _ := WriteVarNum(buf[pos:], TypeInterestLifetime)
		lp, _ := WriteVarNum(buf[pos+tp:], VarNum(n))
		_, _ = WriteNat(buf[pos+tp+lp:], ms)
		pos += tp + lp + n
	}

	return buf[:pos], nil
}

// InterestFromBlock decodes an Interest TLV from buf. Selectors, if
// present, is returned as the opaque sub-range it occupied on the wire.
func InterestFromBlock(buf Block) (Interest, error) {
	length, hdr, err := expectTLHeader(buf, TypeInterest)
	if err != nil {
		return Interest{}, err
	}
	inner := buf[hdr : hdr+length]

	name, err := NameFromBlock(inner)
	if err != nil {
		return Interest{}, err
	}
	pos := TotalTLVLength(TypeName, name.EncodingLength())

	var it Interest
	it.Name = name

	for pos < len(inner) {
		typ, flen, fhdr, err := readTLHeader(inner[pos:])
		if err != nil {
			return Interest{}, err
		}
		val := inner[pos+fhdr : pos+fhdr+flen]
		switch typ {
		case TypeSelectors:
			it.Selectors = Block(inner[pos : pos+fhdr+flen])
		case TypeNonce:
			v, err := ReadNat(val)
			if err != nil {
				return Interest{}, err
			}
			it.Nonce.Set(uint32(v))
		case TypeInterestLifetime:
			v, err := ReadNat(val)
			if err != nil {
				return Interest{}, err
			}
			it.Lifetime.Set(time.Duration(v) * time.Millisecond)
		default:
			return Interest{}, Malformed("unrecognized critical Interest sub-element type %d", typ)
		}
		pos += fhdr + flen
	}
	if !it.Nonce.IsSet() {
		return Interest{}, Malformed("interest is missing its required Nonce")
	}
	return it, nil
}

// GetName returns the Interest's name.
func (i Interest) GetName() Name { return i.Name }

// GetNonce returns the pinned or decoded nonce.
func (i Interest) GetNonce() (uint32, bool) { return i.Nonce.Get() }

// GetLifetime returns the Interest's lifetime, defaulting to 4 seconds per
// spec.md §4.4 when absent.
func (i Interest) GetLifetime() time.Duration {
	if v, ok := i.Lifetime.Get(); ok {
		return v
	}
	return 4 * time.Second
}

// ParseSelectors reads the two Selectors sub-fields this codec
// understands — MustBeFresh and Exclude — out of the opaque Selectors
// block. It is a no-op returning zero values when Selectors is absent.
func (i Interest) ParseSelectors() (mustBeFresh bool, exclude []Component, err error) {
	if len(i.Selectors) == 0 {
		return false, nil, nil
	}
	length, hdr, err := expectTLHeader(i.Selectors, TypeSelectors)
	if err != nil {
		return false, nil, err
	}
	inner := i.Selectors[hdr : hdr+length]
	pos := 0
	for pos < len(inner) {
		typ, flen, fhdr, err := readTLHeader(inner[pos:])
		if err != nil {
			return false, nil, err
		}
		switch typ {
		case TypeMustBeFresh:
			mustBeFresh = true
		case TypeExclude:
			excl, err := parseComponents(inner[pos+fhdr : pos+fhdr+flen])
			if err != nil {
				return false, nil, err
			}
			exclude = []Component(excl)
		default:
			// Unrecognized Selectors sub-field: preserved on the wire via
			// the raw Selectors block, but not interpreted here.
		}
		pos += fhdr + flen
	}
	return mustBeFresh, exclude, nil
}
