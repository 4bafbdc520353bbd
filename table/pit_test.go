package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/named-data/ndncore/pkt"
	"github.com/named-data/ndncore/table"
)

func mustSharedBlock(t *testing.T, s string) *pkt.SharedBlock {
	t.Helper()
	sb, err := pkt.NewSharedBlockCopy([]byte(s))
	require.NoError(t, err)
	return sb
}

func mustPitName(t *testing.T, s string) pkt.Name {
	t.Helper()
	n, err := pkt.NameFromStr(s)
	require.NoError(t, err)
	return n
}

func TestPITAddCreatesNewEntry(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	out := p.Add(mustPitName(t, "/a/b"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, time.Unix(0, 0), time.Second)
	assert.False(t, out.Aggregated)
	assert.NoError(t, out.Err)
	assert.Equal(t, 1, p.Len())
}

func TestPITAddAggregatesSameNameAndSelectors(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	out1 := p.Add(mustPitName(t, "/a/b"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, time.Second)
	out2 := p.Add(mustPitName(t, "/a/b"), false, nil, in, table.FaceRef{ID: 2, Kind: table.FaceKindNetwork}, now, time.Second)

	assert.False(t, out1.Aggregated)
	assert.True(t, out2.Aggregated)
	assert.Equal(t, out1.Token, out2.Token)
	assert.Equal(t, 1, p.Len())
}

// A hit resets the entry's deadline to now+lifetime, even when the later
// arrival carries a shorter lifetime than the one it aggregates into
// (spec.md §4.6 step 3 and TESTABLE PROPERTIES scenario 6).
func TestPITAddHitResetsDeadlineToLatestArrival(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	t0 := time.Unix(0, 0)
	out1 := p.Add(mustPitName(t, "/x"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, t0, 100*time.Millisecond)
	assert.Equal(t, t0.Add(100*time.Millisecond), out1.ExpireAt)

	t1 := t0.Add(10 * time.Millisecond)
	out2 := p.Add(mustPitName(t, "/x"), false, nil, in, table.FaceRef{ID: 2, Kind: table.FaceKindNetwork}, t1, 10*time.Millisecond)

	assert.True(t, out2.Aggregated)
	assert.Equal(t, out1.Token, out2.Token)
	assert.Equal(t, t1.Add(10*time.Millisecond), out2.ExpireAt)
	assert.NotEqual(t, out1.ExpireAt, out2.ExpireAt)
}

func TestPITAddSameFaceReportsExistsButStillSucceeds(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	face := table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}
	p.Add(mustPitName(t, "/a/b"), false, nil, in, face, now, time.Second)
	out := p.Add(mustPitName(t, "/a/b"), false, nil, in, face, now, time.Second)

	assert.True(t, out.Aggregated)
	require.Error(t, out.Err)
	var existsErr table.ErrExists
	assert.ErrorAs(t, out.Err, &existsErr)
}

func TestPITAddDifferentSelectorsDoNotAggregate(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	out1 := p.Add(mustPitName(t, "/a/b"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, time.Second)
	out2 := p.Add(mustPitName(t, "/a/b"), true, nil, in, table.FaceRef{ID: 2, Kind: table.FaceKindNetwork}, now, time.Second)

	assert.False(t, out2.Aggregated)
	assert.NotEqual(t, out1.Token, out2.Token)
	assert.Equal(t, 2, p.Len())
}

func TestPITDataMatchRemovesEntryAndReturnsFaces(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	face1 := table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}
	face2 := table.FaceRef{ID: 2, Kind: table.FaceKindApp}
	now := time.Unix(0, 0)
	p.Add(mustPitName(t, "/a/b"), false, nil, in, face1, now, time.Second)
	p.Add(mustPitName(t, "/a/b"), false, nil, in, face2, now, time.Second)

	matches := p.DataMatch(mustPitName(t, "/a/b"))
	require.Len(t, matches, 1)
	assert.ElementsMatch(t, []table.FaceRef{face1, face2}, matches[0].Faces)
	assert.Equal(t, 0, p.Len())
	matches[0].Interest.Release()
}

func TestPITDataMatchesPrefixInterest(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	p.Add(mustPitName(t, "/a"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, time.Second)

	matches := p.DataMatch(mustPitName(t, "/a/b/c"))
	require.Len(t, matches, 1)
	matches[0].Interest.Release()
}

func TestPITDataMatchNoneFound(t *testing.T) {
	p := table.New(table.PITConfig{})
	matches := p.DataMatch(mustPitName(t, "/nowhere"))
	assert.Empty(t, matches)
}

func TestPITTimeoutRemovesEntryAndReturnsAppFaces(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	appFace := table.FaceRef{ID: 1, Kind: table.FaceKindApp}
	netFace := table.FaceRef{ID: 2, Kind: table.FaceKindNetwork}
	now := time.Unix(0, 0)
	out := p.Add(mustPitName(t, "/a/b"), false, nil, in, appFace, now, time.Second)
	p.Add(mustPitName(t, "/a/b"), false, nil, in, netFace, now, time.Second)

	appFaces, interest, ok := p.Timeout(out.Token)
	require.True(t, ok)
	assert.Equal(t, []table.FaceRef{appFace}, appFaces)
	assert.Equal(t, 0, p.Len())
	interest.Release()
}

func TestPITTimeoutOnStaleTokenIsNoop(t *testing.T) {
	p := table.New(table.PITConfig{})
	_, _, ok := p.Timeout(9999)
	assert.False(t, ok)
}

func TestPITTimeoutAfterDataMatchIsStale(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	out := p.Add(mustPitName(t, "/a/b"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, time.Second)

	matches := p.DataMatch(mustPitName(t, "/a/b"))
	require.Len(t, matches, 1)
	matches[0].Interest.Release()

	_, _, ok := p.Timeout(out.Token)
	assert.False(t, ok)
}

// An Interest whose lifetime exceeds the configured ceiling is rejected
// outright — no entry admitted, no timer to arm — rather than silently
// clamped (spec.md §4.6 step 1, ground-truth original_source/sys/net/ndn/pit.c
// rejecting with -1 instead of truncating).
func TestPITAddRejectsLifetimeBeyondConfiguredCeiling(t *testing.T) {
	p := table.New(table.PITConfig{MaxLifetime: time.Second})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	out := p.Add(mustPitName(t, "/a"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, time.Hour)

	require.Error(t, out.Err)
	var exceeded table.ErrLifetimeExceeded
	assert.ErrorAs(t, out.Err, &exceeded)
	assert.False(t, out.Aggregated)
	assert.Equal(t, 0, p.Len())
}

// The package ceiling itself rejects at exactly 2^22ms+1, matching the
// documented boundary (spec.md §8).
func TestPITAddAcceptsAtDefaultCeilingRejectsBeyondIt(t *testing.T) {
	p := table.New(table.PITConfig{})
	in := mustSharedBlock(t, "interest-bytes")
	defer in.Release()

	now := time.Unix(0, 0)
	ok := p.Add(mustPitName(t, "/a"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, table.MaxLifetime)
	require.NoError(t, ok.Err)

	bad := p.Add(mustPitName(t, "/b"), false, nil, in, table.FaceRef{ID: 1, Kind: table.FaceKindNetwork}, now, table.MaxLifetime+time.Millisecond)
	require.Error(t, bad.Err)
}
