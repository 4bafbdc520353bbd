package pkt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/named-data/ndncore/pkt"
)

func mustName(t *testing.T, s string) pkt.Name {
	t.Helper()
	n, err := pkt.NameFromStr(s)
	require.NoError(t, err)
	return n
}

func TestNameCanonicalOrder(t *testing.T) {
	a := mustName(t, "/a")
	ab := mustName(t, "/a/b")
	ac := mustName(t, "/a/c")
	b := mustName(t, "/b")

	assert.Equal(t, pkt.NameLessPrefix, a.Compare(ab))
	assert.Equal(t, pkt.NameGreaterPrefix, ab.Compare(a))
	assert.Equal(t, pkt.NameLessNoPrefix, ab.Compare(ac))
	assert.Equal(t, pkt.NameGreaterNoPrefix, ac.Compare(ab))
	assert.Equal(t, pkt.NameLessNoPrefix, a.Compare(b))
	assert.Equal(t, pkt.NameEqual, a.Compare(mustName(t, "/a")))
}

func TestNameCompareAntisymmetry(t *testing.T) {
	names := []pkt.Name{
		mustName(t, "/a"),
		mustName(t, "/a/b"),
		mustName(t, "/a/c"),
		mustName(t, "/b"),
		mustName(t, ""),
	}
	flip := map[pkt.NameCompareResult]pkt.NameCompareResult{
		pkt.NameEqual:           pkt.NameEqual,
		pkt.NameLessPrefix:      pkt.NameGreaterPrefix,
		pkt.NameLessNoPrefix:    pkt.NameGreaterNoPrefix,
		pkt.NameGreaterPrefix:   pkt.NameLessPrefix,
		pkt.NameGreaterNoPrefix: pkt.NameLessNoPrefix,
	}
	for _, n1 := range names {
		for _, n2 := range names {
			r1 := n1.Compare(n2)
			r2 := n2.Compare(n1)
			assert.Equal(t, flip[r1], r2, "compare(%s,%s)=%v but compare(%s,%s)=%v", n1, n2, r1, n2, n1, r2)
		}
	}
}

func TestNameIsPrefixOrEqual(t *testing.T) {
	a := mustName(t, "/a")
	ab := mustName(t, "/a/b")

	assert.True(t, a.Compare(ab).IsPrefixOrEqual())
	assert.True(t, a.Compare(a).IsPrefixOrEqual())
	assert.False(t, ab.Compare(a).IsPrefixOrEqual())
}

func TestNameEncodeDecodeRoundTrip(t *testing.T) {
	n := mustName(t, "/a/b/c")
	buf, err := n.Bytes()
	require.NoError(t, err)

	got, err := pkt.NameFromBlock(pkt.Block(buf))
	require.NoError(t, err)
	assert.True(t, n.Equal(got))
}

func TestNameFromStrSlashIsEmpty(t *testing.T) {
	n := mustName(t, "/")
	assert.Equal(t, 0, len(n))
}

func TestNameHashStableAndDistinct(t *testing.T) {
	ab := mustName(t, "/a/b")
	assert.Equal(t, ab.Hash(), mustName(t, "/a/b").Hash())
	assert.NotEqual(t, ab.Hash(), mustName(t, "/a/c").Hash())
}

func mustBlock(t *testing.T, s string) pkt.Block {
	t.Helper()
	buf, err := mustName(t, s).Bytes()
	require.NoError(t, err)
	return pkt.Block(buf)
}

// CompareBlocks, operating directly on encoded Name TLVs, must agree with
// Name.Compare on the in-memory form it was encoded from (spec.md §4.3,
// §8's round-trip property).
func TestCompareBlocksAgreesWithNameCompare(t *testing.T) {
	names := []string{"/a", "/a/b", "/a/c", "/b", ""}
	for _, ls := range names {
		for _, rs := range names {
			l, r := mustName(t, ls), mustName(t, rs)
			want := l.Compare(r)

			got, err := pkt.CompareBlocks(mustBlock(t, ls), mustBlock(t, rs))
			require.NoError(t, err)
			assert.Equal(t, want, got, "CompareBlocks(%q,%q)", ls, rs)
		}
	}
}

// CompareBlocks is antisymmetric the same way Name.Compare is (spec.md §8).
func TestCompareBlocksAntisymmetry(t *testing.T) {
	flip := map[pkt.NameCompareResult]pkt.NameCompareResult{
		pkt.NameEqual:           pkt.NameEqual,
		pkt.NameLessPrefix:      pkt.NameGreaterPrefix,
		pkt.NameLessNoPrefix:    pkt.NameGreaterNoPrefix,
		pkt.NameGreaterPrefix:   pkt.NameLessPrefix,
		pkt.NameGreaterNoPrefix: pkt.NameLessNoPrefix,
	}
	names := []string{"/a", "/a/b", "/a/c", "/b", ""}
	for _, ls := range names {
		for _, rs := range names {
			r1, err := pkt.CompareBlocks(mustBlock(t, ls), mustBlock(t, rs))
			require.NoError(t, err)
			r2, err := pkt.CompareBlocks(mustBlock(t, rs), mustBlock(t, ls))
			require.NoError(t, err)
			assert.Equal(t, flip[r1], r2, "CompareBlocks(%q,%q)=%v but CompareBlocks(%q,%q)=%v", ls, rs, r1, rs, ls, r2)
		}
	}
}

func TestComponentAtMatchesInMemoryIndexing(t *testing.T) {
	n := mustName(t, "/a/b/c")
	block := mustBlock(t, "/a/b/c")

	for i := 0; i < len(n); i++ {
		c, err := pkt.ComponentAt(block, i)
		require.NoError(t, err)
		assert.True(t, c.Equal(n[i]), "component %d mismatch", i)
	}

	_, err := pkt.ComponentAt(block, len(n))
	assert.Error(t, err)

	_, err = pkt.ComponentAt(block, -1)
	assert.Error(t, err)
}

func TestComponentCountMatchesNameLength(t *testing.T) {
	for _, s := range []string{"/", "/a", "/a/b", "/a/b/c"} {
		n := mustName(t, s)
		count, err := pkt.ComponentCount(mustBlock(t, s))
		require.NoError(t, err)
		assert.Equal(t, len(n), count, "name %q", s)
	}
}
