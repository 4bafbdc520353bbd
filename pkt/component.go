package pkt

import "bytes"

// TLV type tags for name components that this codec understands on encode;
// on decode any type tag is accepted and preserved (spec.md §4.3: "each
// component is a GenericNameComponent unless the caller supplies a
// different type").
const TypeGenericNameComponent VarNum = 0x08

// Component is one element of a Name: a type tag plus an opaque value. It
// is a borrowed alias of Block (spec.md §3): the Val slice is never copied
// by the component itself.
type Component struct {
	Typ VarNum
	Val []byte
}

// NewGenericComponent builds a GenericNameComponent from a string value.
func NewGenericComponent(s string) Component {
	return Component{Typ: TypeGenericNameComponent, Val: []byte(s)}
}

// NewComponent builds a component of an explicit type.
func NewComponent(typ VarNum, val []byte) Component {
	return Component{Typ: typ, Val: val}
}

// EncodingLength returns the size of the component's TLV encoding.
func (c Component) EncodingLength() int {
	return TotalTLVLength(c.Typ, len(c.Val))
}

// EncodeInto writes the component's TLV encoding to buf, returning the
// number of bytes written.
func (c Component) EncodeInto(buf []byte) (int, error) {
	n := c.EncodingLength()
	if len(buf) < n {
		return 0, Malformed("buffer too small to encode component (need %d, have %d)", n, len(buf))
	}
	p1, _ := WriteVarNum(buf, c.Typ)
	p2, _ := WriteVarNum(buf[p1:], VarNum(len(c.Val)))
	copy(buf[p1+p2:], c.Val)
	return n, nil
}

// Bytes allocates and returns the component's TLV encoding.
func (c Component) Bytes() []byte {
	buf := make([]byte, c.EncodingLength())
	_, _ = c.EncodeInto(buf)
	return buf
}

// Compare orders components in NDN canonical order (spec.md §4.3): a
// shorter value is lesser; for equal-length values, lexicographic byte
// comparison decides. The type tag is not part of canonical component
// ordering.
func (c Component) Compare(rhs Component) int {
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

// Equal reports whether two components have the same type and value.
func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// readComponent reads one component TLV from the start of buf.
func readComponent(buf []byte) (Component, int, error) {
	typ, length, hdr, err := readTLHeader(buf)
	if err != nil {
		return Component{}, 0, err
	}
	return Component{Typ: typ, Val: buf[hdr : hdr+length]}, hdr + length, nil
}
