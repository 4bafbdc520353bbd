package pkt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/named-data/ndncore/pkt"
)

type fixedRNG uint32

func (r fixedRNG) Uint32() uint32 { return uint32(r) }

func TestInterestEncodeDecodeRoundTrip(t *testing.T) {
	i := pkt.Interest{Name: mustName(t, "/a/b")}
	i.Lifetime.Set(2 * time.Second)

	buf, err := i.Encode(fixedRNG(42))
	require.NoError(t, err)

	got, err := pkt.InterestFromBlock(buf)
	require.NoError(t, err)
	assert.True(t, i.Name.Equal(got.Name))

	nonce, ok := got.GetNonce()
	require.True(t, ok)
	assert.EqualValues(t, 42, nonce)
	assert.Equal(t, 2*time.Second, got.GetLifetime())
}

func TestInterestEmptyNameRejectedOnEncode(t *testing.T) {
	i := pkt.Interest{Name: pkt.Name{}}
	_, err := i.Encode(fixedRNG(1))
	require.Error(t, err)
}

func TestInterestDefaultLifetimeWhenAbsent(t *testing.T) {
	i := pkt.Interest{Name: mustName(t, "/a")}
	buf, err := i.Encode(fixedRNG(1))
	require.NoError(t, err)

	got, err := pkt.InterestFromBlock(buf)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, got.GetLifetime())
}

func TestInterestLifetimeBoundary(t *testing.T) {
	i := pkt.Interest{Name: mustName(t, "/a")}
	i.Lifetime.Set(pkt.MaxLifetimeMillis * time.Millisecond)
	_, err := i.Encode(fixedRNG(1))
	require.NoError(t, err)

	i.Lifetime.Set((pkt.MaxLifetimeMillis + 1) * time.Millisecond)
	_, err = i.Encode(fixedRNG(1))
	require.Error(t, err)
}

func TestInterestSelectorsMustBeFreshAndExclude(t *testing.T) {
	exclude := []pkt.Component{pkt.NewGenericComponent("x"), pkt.NewGenericComponent("y")}

	excludeInner := 0
	for _, c := range exclude {
		excludeInner += c.EncodingLength()
	}
	flagBuf := make([]byte, 4)
	f1, _ := pkt.WriteVarNum(flagBuf, pkt.TypeMustBeFresh)
	f2, _ := pkt.WriteVarNum(flagBuf[f1:], pkt.VarNum(0))
	flagLen := f1 + f2

	exclBuf := make([]byte, 8+excludeInner)
	e1, _ := pkt.WriteVarNum(exclBuf, pkt.TypeExclude)
	e2, _ := pkt.WriteVarNum(exclBuf[e1:], pkt.VarNum(excludeInner))
	pos := e1 + e2
	for _, c := range exclude {
		n, err := c.EncodeInto(exclBuf[pos:])
		require.NoError(t, err)
		pos += n
	}
	exclBuf = exclBuf[:pos]

	inner := flagLen + len(exclBuf)
	hdr := make([]byte, 8)
	h1, _ := pkt.WriteVarNum(hdr, pkt.TypeSelectors)
	h2, _ := pkt.WriteVarNum(hdr[h1:], pkt.VarNum(inner))

	selectors := make([]byte, 0, h1+h2+inner)
	selectors = append(selectors, hdr[:h1+h2]...)
	selectors = append(selectors, flagBuf[:flagLen]...)
	selectors = append(selectors, exclBuf...)

	i := pkt.Interest{Name: mustName(t, "/a"), Selectors: pkt.Block(selectors)}
	mustBeFresh, got, err := i.ParseSelectors()
	require.NoError(t, err)
	assert.True(t, mustBeFresh)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(exclude[0]))
	assert.True(t, got[1].Equal(exclude[1]))
}

func TestInterestNoSelectorsParsesToZeroValues(t *testing.T) {
	i := pkt.Interest{Name: mustName(t, "/a")}
	mustBeFresh, exclude, err := i.ParseSelectors()
	require.NoError(t, err)
	assert.False(t, mustBeFresh)
	assert.Nil(t, exclude)
}

func TestInterestDecodeRejectsMissingNonce(t *testing.T) {
	n := mustName(t, "/a")
	nameBytes, err := n.Bytes()
	require.NoError(t, err)

	buf := make([]byte, 4+len(nameBytes))
	p1, _ := pkt.WriteVarNum(buf, pkt.TypeInterest)
	p2, _ := pkt.WriteVarNum(buf[p1:], pkt.VarNum(len(nameBytes)))
	pos := p1 + p2
	pos += copy(buf[pos:], nameBytes)

	_, err = pkt.InterestFromBlock(pkt.Block(buf[:pos]))
	require.Error(t, err)
}
