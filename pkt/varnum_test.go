package pkt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/named-data/ndncore/pkt"
)

func TestVarNumRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 252, 253, 254, 255, 65535, 65536, 0xffffffff}
	for _, v := range cases {
		buf := make([]byte, pkt.VarNum(v).EncodingLength())
		n, err := pkt.WriteVarNum(buf, pkt.VarNum(v))
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)

		got, consumed, err := pkt.ReadVarNum(buf)
		require.NoError(t, err)
		assert.Equal(t, pkt.VarNum(v), got)
		assert.Equal(t, n, consumed)
	}
}

func TestVarNumEncodingLengthBoundaries(t *testing.T) {
	assert.Equal(t, 1, pkt.VarNum(252).EncodingLength())
	assert.Equal(t, 3, pkt.VarNum(253).EncodingLength())
	assert.Equal(t, 3, pkt.VarNum(65535).EncodingLength())
	assert.Equal(t, 5, pkt.VarNum(65536).EncodingLength())
	assert.Equal(t, 5, pkt.VarNum(0xffffffff).EncodingLength())
}

func TestReadVarNumTruncated(t *testing.T) {
	_, _, err := pkt.ReadVarNum(nil)
	require.Error(t, err)

	_, _, err = pkt.ReadVarNum([]byte{0xfd, 0x01})
	require.Error(t, err)

	_, _, err = pkt.ReadVarNum([]byte{0xfe, 0x01, 0x02})
	require.Error(t, err)

	_, _, err = pkt.ReadVarNum([]byte{0xff, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestReadVarNumRejectsOver32Bits(t *testing.T) {
	buf := []byte{0xff, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}
	_, _, err := pkt.ReadVarNum(buf)
	require.Error(t, err)
}

func TestReadVarNum8ByteWithinRange(t *testing.T) {
	buf := []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}
	v, n, err := pkt.ReadVarNum(buf)
	require.NoError(t, err)
	assert.Equal(t, pkt.VarNum(0xffffffff), v)
	assert.Equal(t, 9, n)
}

func TestNatRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xff, 0x100, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, v := range cases {
		n := pkt.NatEncodingLength(v)
		buf := make([]byte, n)
		w, err := pkt.WriteNat(buf, v)
		require.NoError(t, err)
		assert.Equal(t, n, w)

		got, err := pkt.ReadNat(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNatEncodingLengthBoundaries(t *testing.T) {
	assert.Equal(t, 1, pkt.NatEncodingLength(0xff))
	assert.Equal(t, 2, pkt.NatEncodingLength(0x100))
	assert.Equal(t, 2, pkt.NatEncodingLength(0xffff))
	assert.Equal(t, 4, pkt.NatEncodingLength(0x10000))
	assert.Equal(t, 4, pkt.NatEncodingLength(0xffffffff))
	assert.Equal(t, 8, pkt.NatEncodingLength(0x100000000))
}

func TestReadNatRejectsBadWidth(t *testing.T) {
	_, err := pkt.ReadNat([]byte{1, 2, 3})
	require.Error(t, err)
}
