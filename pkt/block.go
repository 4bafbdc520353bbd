// Package pkt implements the NDN TLV codec at the center of this module:
// the VarNumber primitives (varnum.go), the reference-counted SharedBlock
// (shared.go), Name/NameComponent (name.go, component.go), and the
// Interest/Data wire formats (interest.go, data.go, metainfo.go).
package pkt

// Block is a borrowed view over a byte range: it never allocates and never
// owns the memory it points into. Its validity is bound to whatever
// backing storage (a SharedBlock, a caller's buffer, a bigger Block it was
// sliced from) the caller keeps alive.
//
// This mirrors the RIOT `ndn_block_t` this spec was distilled from almost
// exactly: a pointer and a length, nothing else.
type Block []byte

// TLV type tags used by this codec, per spec.md §6.
const (
	TypeName             VarNum = 0x07
	TypeNameComponent    VarNum = 0x08
	TypeInterest         VarNum = 0x05
	TypeSelectors        VarNum = 0x09
	TypeNonce            VarNum = 0x0a
	TypeInterestLifetime VarNum = 0x0c
	TypeData             VarNum = 0x06
	TypeMetaInfo         VarNum = 0x14
	TypeContentType      VarNum = 0x18
	TypeFreshnessPeriod  VarNum = 0x19
	TypeContent          VarNum = 0x15
	TypeSignatureInfo    VarNum = 0x16
	TypeSignatureType    VarNum = 0x1b
	TypeKeyLocator       VarNum = 0x1c
	TypeSignatureValue   VarNum = 0x17
)

// readTLHeader parses a type and length VarNum pair from the start of buf,
// returning the type, the declared content length, and the number of
// header bytes consumed. It fails if the declared length runs past the
// remaining input.
func readTLHeader(buf []byte) (typ VarNum, length int, hdr int, err error) {
	typ, tn, err := ReadVarNum(buf)
	if err != nil {
		return 0, 0, 0, err
	}
	l, ln, err := ReadVarNum(buf[tn:])
	if err != nil {
		return 0, 0, 0, err
	}
	hdr = tn + ln
	length = int(l)
	if length < 0 || hdr+length > len(buf) {
		return 0, 0, 0, Malformed("TLV declares length %d past end of %d-byte input", length, len(buf)-hdr)
	}
	return typ, length, hdr, nil
}

// expectTLHeader is readTLHeader plus a check that the type tag matches want.
func expectTLHeader(buf []byte, want VarNum) (length int, hdr int, err error) {
	typ, length, hdr, err := readTLHeader(buf)
	if err != nil {
		return 0, 0, err
	}
	if typ != want {
		return 0, 0, Malformed("expected TLV type %d, got %d", want, typ)
	}
	return length, hdr, nil
}
