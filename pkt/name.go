package pkt

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Name is an ordered, in-memory sequence of components. The caller owns
// the slice; components borrow from whatever backing storage keeps their
// Val bytes alive (spec.md §3).
type Name []Component

// NameFromStr parses a "/a/b/c" URI-style string into a Name. A leading
// and/or trailing slash is tolerated and ignored; an empty string or bare
// "/" yields an empty Name.
func NameFromStr(s string) (Name, error) {
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return Name{}, nil
	}
	parts := strings.Split(s, "/")
	name := make(Name, len(parts))
	for i, p := range parts {
		name[i] = NewGenericComponent(p)
	}
	return name, nil
}

// String renders the Name back into "/a/b/c" form.
func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, c := range n {
		sb.WriteByte('/')
		sb.Write(c.Val)
	}
	return sb.String()
}

// At returns the i-th component. A negative i counts from the end (-1 is
// the last component). Out-of-range indices return the zero Component.
func (n Name) At(i int) Component {
	if i < 0 {
		i = len(n) + i
	}
	if i < 0 || i >= len(n) {
		return Component{}
	}
	return n[i]
}

// EncodingLength returns the size of the concatenated component TLVs,
// excluding the outer Name TL header.
func (n Name) EncodingLength() int {
	total := 0
	for _, c := range n {
		total += c.EncodingLength()
	}
	return total
}

// TotalLength validates the name (every component must have non-empty
// content, per spec.md §4.3) and returns the full encoded size including
// the outer Name TL header.
func (n Name) TotalLength() (int, error) {
	if len(n) == 0 {
		return 0, InvalidArgument("name must have at least one component to be encoded")
	}
	inner := 0
	for _, c := range n {
		if len(c.Val) == 0 {
			return 0, InvalidArgument("name component must not be empty")
		}
		inner += c.EncodingLength()
	}
	return TotalTLVLength(TypeName, inner), nil
}

// EncodeInto writes the full Name TLV (including its TL header) to buf.
func (n Name) EncodeInto(buf []byte) (int, error) {
	total, err := n.TotalLength()
	if err != nil {
		return 0, err
	}
	if len(buf) < total {
		return 0, Malformed("buffer too small to encode name (need %d, have %d)", total, len(buf))
	}
	inner := n.EncodingLength()
	p1, _ := WriteVarNum(buf, TypeName)
	p2, _ := WriteVarNum(buf[p1:], VarNum(inner))
	pos := p1 + p2
	for _, c := range n {
		w, err := c.EncodeInto(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += w
	}
	return pos, nil
}

// Bytes allocates and returns the full Name TLV encoding.
func (n Name) Bytes() ([]byte, error) {
	total, err := n.TotalLength()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, total)
	if _, err := n.EncodeInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// NameFromBlock decodes a Name TLV (including its TL header) into an
// in-memory Name. The returned components borrow from buf.
func NameFromBlock(buf Block) (Name, error) {
	length, hdr, err := expectTLHeader(buf, TypeName)
	if err != nil {
		return nil, err
	}
	return parseComponents(buf[hdr : hdr+length])
}

func parseComponents(buf []byte) (Name, error) {
	name := make(Name, 0, 4)
	pos := 0
	for pos < len(buf) {
		c, n, err := readComponent(buf[pos:])
		if err != nil {
			return nil, err
		}
		name = append(name, c)
		pos += n
	}
	return name, nil
}

// Hash returns an xxhash-based hash of the name's encoded form, used to
// accelerate PIT lookup (spec.md §9: "implementations may index by name
// hash"). The CS does not use it: CS matching is a linear scan.
func (n Name) Hash() uint64 {
	h := xxhash.New()
	for _, c := range n {
		b := make([]byte, c.EncodingLength())
		_, _ = c.EncodeInto(b)
		_, _ = h.Write(b)
	}
	return h.Sum64()
}

// NameCompareResult is the five-valued result of comparing two names in
// canonical order, rich enough to drive PIT/CS longest-prefix matching
// (spec.md §4.3).
type NameCompareResult int

const (
	// NameEqual: the two names are identical.
	NameEqual NameCompareResult = iota
	// NameLessPrefix: lhs < rhs and lhs is a proper prefix of rhs.
	NameLessPrefix
	// NameLessNoPrefix: lhs < rhs and lhs is not a prefix of rhs.
	NameLessNoPrefix
	// NameGreaterPrefix: lhs > rhs and rhs is a proper prefix of lhs.
	NameGreaterPrefix
	// NameGreaterNoPrefix: lhs > rhs and rhs is not a prefix of lhs.
	NameGreaterNoPrefix
)

// IsPrefixOrEqual reports whether r means lhs == rhs or lhs is a (proper
// or improper) prefix of rhs — exactly the relation the CS and PIT use to
// decide "this cached Data satisfies that Interest" / "this Interest name
// covers that Data name".
func (r NameCompareResult) IsPrefixOrEqual() bool {
	return r == NameEqual || r == NameLessPrefix
}

// Compare orders two in-memory Names in NDN canonical order: componentwise
// from the left, with a strict prefix always sorting before the longer
// name it prefixes.
func (n Name) Compare(rhs Name) NameCompareResult {
	for i := 0; i < min(len(n), len(rhs)); i++ {
		switch c := n[i].Compare(rhs[i]); {
		case c < 0:
			return NameLessNoPrefix
		case c > 0:
			return NameGreaterNoPrefix
		}
	}
	switch {
	case len(n) == len(rhs):
		return NameEqual
	case len(n) < len(rhs):
		return NameLessPrefix
	default:
		return NameGreaterPrefix
	}
}

// Equal reports whether two names have identical components.
func (n Name) Equal(rhs Name) bool {
	return n.Compare(rhs) == NameEqual
}

// CompareBlocks compares two encoded Name TLVs directly, without first
// decoding either into an in-memory Name — a zero-copy walk matching the
// original C ndn_name_compare_block. table.PIT/table.CS instead decode
// once at arrival and compare the resulting in-memory Names; CompareBlocks
// is for callers that only ever hold an encoded block and want to avoid
// that decode (spec.md §4.3).
func CompareBlocks(lhs, rhs Block) (NameCompareResult, error) {
	llen, lhdr, err := expectTLHeader(lhs, TypeName)
	if err != nil {
		return 0, err
	}
	rlen, rhdr, err := expectTLHeader(rhs, TypeName)
	if err != nil {
		return 0, err
	}
	lbuf, rbuf := lhs[lhdr:lhdr+llen], rhs[rhdr:rhdr+rlen]

	lpos, rpos := 0, 0
	for lpos < len(lbuf) && rpos < len(rbuf) {
		lc, ln, err := readComponent(lbuf[lpos:])
		if err != nil {
			return 0, err
		}
		rc, rn, err := readComponent(rbuf[rpos:])
		if err != nil {
			return 0, err
		}
		if c := lc.Compare(rc); c < 0 {
			return NameLessNoPrefix, nil
		} else if c > 0 {
			return NameGreaterNoPrefix, nil
		}
		lpos += ln
		rpos += rn
	}
	switch {
	case lpos == len(lbuf) && rpos == len(rbuf):
		return NameEqual, nil
	case lpos == len(lbuf):
		return NameLessPrefix, nil
	default:
		return NameGreaterPrefix, nil
	}
}

// ComponentAt returns the i-th component of an encoded Name TLV without
// copying. Only non-negative indices are valid on encoded blocks (spec.md
// §4.3: negative-offset indexing is an in-memory-only convenience).
func ComponentAt(buf Block, i int) (Component, error) {
	if i < 0 {
		return Component{}, InvalidArgument("negative index %d is not valid on an encoded Name block", i)
	}
	length, hdr, err := expectTLHeader(buf, TypeName)
	if err != nil {
		return Component{}, err
	}
	inner := buf[hdr : hdr+length]
	pos := 0
	for idx := 0; pos < len(inner); idx++ {
		c, n, err := readComponent(inner[pos:])
		if err != nil {
			return Component{}, err
		}
		if idx == i {
			return c, nil
		}
		pos += n
	}
	return Component{}, Malformed("component index %d out of range", i)
}

// ComponentCount returns the number of components in an encoded Name TLV.
func ComponentCount(buf Block) (int, error) {
	length, hdr, err := expectTLHeader(buf, TypeName)
	if err != nil {
		return 0, err
	}
	inner := buf[hdr : hdr+length]
	count, pos := 0, 0
	for pos < len(inner) {
		_, n, err := readComponent(inner[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
		count++
	}
	return count, nil
}
