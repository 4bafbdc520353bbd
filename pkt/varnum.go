package pkt

import "encoding/binary"

// VarNum is an NDN TLV variable-length number (a Type or a Length): a
// first byte b < 253 encodes itself; b == 253 introduces a 2-byte
// big-endian value; b == 254 a 4-byte value; b == 255 an 8-byte value.
//
// Per spec.md §4.1, values read off the wire that do not fit in 32 bits
// are rejected, so VarNum is carried as a plain uint32 everywhere in this
// package.
type VarNum uint32

// EncodingLength returns the number of bytes (1, 3 or 5) the smallest
// valid encoding of v occupies; the 9-byte form is never needed for a
// 32-bit value.
func (v VarNum) EncodingLength() int {
	switch {
	case v <= 0xfc:
		return 1
	case v <= 0xffff:
		return 3
	default:
		return 5
	}
}

// WriteVarNum encodes v into buf using the smallest encoding that fits,
// returning the number of bytes written, or ErrMalformed if buf is too
// small.
func WriteVarNum(buf []byte, v VarNum) (int, error) {
	n := v.EncodingLength()
	if len(buf) < n {
		return 0, Malformed("buffer too small to encode VarNum (need %d, have %d)", n, len(buf))
	}
	switch n {
	case 1:
		buf[0] = byte(v)
	case 3:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(v))
	case 5:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(v))
	}
	return n, nil
}

// ReadVarNum decodes a VarNum from the start of buf, returning its value
// and the number of bytes consumed.
func ReadVarNum(buf []byte) (VarNum, int, error) {
	if len(buf) == 0 {
		return 0, 0, Malformed("empty input while reading VarNum")
	}
	b := buf[0]
	switch {
	case b <= 0xfc:
		return VarNum(b), 1, nil
	case b == 0xfd:
		if len(buf) < 3 {
			return 0, 0, Malformed("truncated 2-byte VarNum")
		}
		return VarNum(binary.BigEndian.Uint16(buf[1:3])), 3, nil
	case b == 0xfe:
		if len(buf) < 5 {
			return 0, 0, Malformed("truncated 4-byte VarNum")
		}
		return VarNum(binary.BigEndian.Uint32(buf[1:5])), 5, nil
	default: // b == 0xff
		if len(buf) < 9 {
			return 0, 0, Malformed("truncated 8-byte VarNum")
		}
		val := binary.BigEndian.Uint64(buf[1:9])
		if val > 0xffffffff {
			return 0, 0, Malformed("VarNum %d does not fit in 32 bits", val)
		}
		return VarNum(val), 9, nil
	}
}

// TotalTLVLength returns the total encoded size of a TLV block with the
// given type and content length: vnum_len(type) + vnum_len(length) + length.
func TotalTLVLength(typ VarNum, length int) int {
	return typ.EncodingLength() + VarNum(length).EncodingLength() + length
}

// NatEncodingLength returns the number of bytes (1, 2, 4 or 8) the
// smallest non-negative-integer encoding of v occupies.
func NatEncodingLength(v uint64) int {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

// WriteNat encodes v as an unsigned big-endian integer using the smallest
// of the 1/2/4/8-byte widths, returning the number of bytes written.
func WriteNat(buf []byte, v uint64) (int, error) {
	n := NatEncodingLength(v)
	if len(buf) < n {
		return 0, Malformed("buffer too small to encode integer (need %d, have %d)", n, len(buf))
	}
	switch n {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(buf, v)
	}
	return n, nil
}

// ReadNat decodes a non-negative integer whose encoded width is exactly
// len(buf), which must be 1, 2, 4 or 8.
func ReadNat(buf []byte) (uint64, error) {
	switch len(buf) {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(buf)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(buf)), nil
	case 8:
		return binary.BigEndian.Uint64(buf), nil
	default:
		return 0, Malformed("integer length %d is not 1, 2, 4 or 8", len(buf))
	}
}
