package pkt

import (
	"time"

	"github.com/named-data/ndncore/internal/optional"
)

// MetaInfo carries a Data packet's optional content-type and freshness
// period (spec.md §3/§4.4). It is a value type, encoded inline in Data.
type MetaInfo struct {
	ContentType     optional.Optional[uint64]
	FreshnessPeriod optional.Optional[time.Duration]
}

// EncodingLength returns the size of the MetaInfo TLV, including its own
// TL header.
func (m MetaInfo) EncodingLength() int {
	inner := 0
	if v, ok := m.ContentType.Get(); ok {
		inner += TotalTLVLength(TypeContentType, NatEncodingLength(v))
	}
	if v, ok := m.FreshnessPeriod.Get(); ok {
		inner += TotalTLVLength(TypeFreshnessPeriod, NatEncodingLength(uint64(v.Milliseconds())))
	}
	return TotalTLVLength(TypeMetaInfo, inner)
}

// EncodeInto writes the MetaInfo TLV (with its TL header) into buf.
func (m MetaInfo) EncodeInto(buf []byte) (int, error) {
	total := m.EncodingLength()
	if len(buf) < total {
		return 0, Malformed("buffer too small to encode metainfo (need %d, have %d)", total, len(buf))
	}

	rawInner := 0
	if v, ok := m.ContentType.Get(); ok {
		rawInner += TotalTLVLength(TypeContentType, NatEncodingLength(v))
	}
	if v, ok := m.FreshnessPeriod.Get(); ok {
		rawInner += TotalTLVLength(TypeFreshnessPeriod, NatEncodingLength(uint64(v.Milliseconds())))
	}

	p1, _ := WriteVarNum(buf, TypeMetaInfo)
	p2, _ := WriteVarNum(buf[p1:], VarNum(rawInner))
	pos := p1 + p2

	if v, ok := m.ContentType.Get(); ok {
		n := NatEncodingLength(v)
		tp, _ := WriteVarNum(buf[pos:], TypeContentType)
		lp, _ := WriteVarNum(buf[pos+tp:], VarNum(n))
		_, _ = WriteNat(buf[pos+tp+lp:], v)
		pos += tp + lp + n
	}
	if v, ok := m.FreshnessPeriod.Get(); ok {
		ms := uint64(v.Milliseconds())
		n := NatEncodingLength(ms)
		tp, _ := WriteVarNum(buf[pos:], TypeFreshnessPeriod)
		lp, _ := WriteVarNum(buf[pos+tp:], VarNum(n))
		_, _ = WriteNat(buf[pos+tp+lp:], ms)
		pos += tp + lp + n
	}
	return pos, nil
}

// Bytes allocates and returns the MetaInfo TLV encoding.
func (m MetaInfo) Bytes() []byte {
	buf := make([]byte, m.EncodingLength())
	_, _ = m.EncodeInto(buf)
	return buf
}

// parseMetaInfo decodes a MetaInfo TLV (including its TL header) from the
// start of buf, returning the value and the number of bytes consumed.
func parseMetaInfo(buf []byte) (MetaInfo, int, error) {
	length, hdr, err := expectTLHeader(buf, TypeMetaInfo)
	if err != nil {
		return MetaInfo{}, 0, err
	}
	inner := buf[hdr : hdr+length]
	var m MetaInfo
	pos := 0
	for pos < len(inner) {
		typ, flen, fhdr, err := readTLHeader(inner[pos:])
		if err != nil {
			return MetaInfo{}, 0, err
		}
		val := inner[pos+fhdr : pos+fhdr+flen]
		switch typ {
		case TypeContentType:
			v, err := ReadNat(val)
			if err != nil {
				return MetaInfo{}, 0, err
			}
			m.ContentType.Set(v)
		case TypeFreshnessPeriod:
			v, err := ReadNat(val)
			if err != nil {
				return MetaInfo{}, 0, err
			}
			m.FreshnessPeriod.Set(time.Duration(v) * time.Millisecond)
		default:
			// Unrecognized non-critical MetaInfo sub-field: skip.
		}
		pos += fhdr + flen
	}
	return m, hdr + length, nil
}
