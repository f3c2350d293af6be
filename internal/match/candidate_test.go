package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownFields = []string{
	"containers", "container", "image", "labels", "metadata", "name",
	"ports", "port", "replicas", "selector", "spec", "tablet",
}

func TestRankCandidates(t *testing.T) {
	candidates := RankCandidates("contaners", knownFields, DefaultMaxDistance, nil)
	require.NotEmpty(t, candidates)

	best := candidates.Best()
	require.NotNil(t, best)
	assert.Equal(t, "containers", best.Name)
	assert.Equal(t, 1, best.Distance)
	assert.InDelta(t, 0.9, best.Confidence, 1e-9)

	// "container" is also within two edits
	assert.Contains(t, candidates.Names(), "container")
}

func TestRankCandidates_ExactMatchSkipped(t *testing.T) {
	candidates := RankCandidates("image", []string{"image"}, DefaultMaxDistance, nil)
	assert.Empty(t, candidates)
}

func TestRankCandidates_DistanceLimit(t *testing.T) {
	candidates := RankCandidates("xyzzy", knownFields, DefaultMaxDistance, nil)
	assert.Empty(t, candidates)
	assert.Nil(t, candidates.Best())
}

func TestRankCandidates_PlausibleBreaksTie(t *testing.T) {
	// "lables" is two edits from both "labels" and "tablet"
	plausible := func(name string) bool { return name == "labels" }

	candidates := RankCandidates("lables", knownFields, DefaultMaxDistance, plausible)
	require.GreaterOrEqual(t, len(candidates), 2)

	assert.Equal(t, "labels", candidates[0].Name)
	assert.True(t, candidates[0].Plausible)
	assert.False(t, candidates.IsAmbiguous())
}

func TestRankCandidates_AlphabeticalTie(t *testing.T) {
	candidates := RankCandidates("lables", knownFields, DefaultMaxDistance, nil)
	require.GreaterOrEqual(t, len(candidates), 2)

	assert.Equal(t, []string{"labels", "tablet"}, candidates.Top(2).Names())
	assert.True(t, candidates.IsAmbiguous())
}

func TestCandidateList_Sorting(t *testing.T) {
	candidates := CandidateList{
		{Name: "zeta", Distance: 1},
		{Name: "beta", Distance: 2, Plausible: true},
		{Name: "alpha", Distance: 1},
		{Name: "gamma", Distance: 1, Plausible: true},
	}

	assert.True(t, candidates.Less(3, 0), "plausible wins at equal distance")
	assert.True(t, candidates.Less(2, 0), "alphabetical at equal distance and plausibility")
	assert.True(t, candidates.Less(0, 1), "smaller distance first")
}

func TestCandidateList_Top(t *testing.T) {
	candidates := CandidateList{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, candidates.Top(2), 2)
	assert.Len(t, candidates.Top(10), 3)
}
