package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(id string, tags ...string) FoodInfo {
	return FoodInfo{ID: id, Name: "Food " + id, ImageURL: "https://img/" + id, Tags: tags}
}

func TestRankTopKNoInteractions(t *testing.T) {
	snap := Snapshot{
		Interest: map[string]float64{"pizza": 3},
		Foods:    map[string]FoodInfo{"f1": food("f1", "pizza")},
	}
	assert.Empty(t, RankTopK(snap, 10))
}

func TestRankTopKNonPositiveK(t *testing.T) {
	snap := Snapshot{
		Direct:   []DirectEdge{{FoodID: "f1", Kind: DirectPurchased}},
		Interest: map[string]float64{"pizza": 1},
		Foods:    map[string]FoodInfo{"f1": food("f1", "pizza")},
	}
	assert.Empty(t, RankTopK(snap, 0))
	assert.Empty(t, RankTopK(snap, -3))
}

// Worked example: user purchased A (tags x, y) and B (tag z); B is similar
// to C (score 0.5, tag z); interest x=1, z=2. Expected: B=3.0, then A and C
// tied at 1.5, ordered by food id.
func TestRankTopKBothBranches(t *testing.T) {
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "food-a", Kind: DirectPurchased},
			{FoodID: "food-b", Kind: DirectPurchased},
		},
		Similar: []SimilarityEdge{
			{Source: "food-b", Target: "food-c", Score: 0.5},
		},
		Interest: map[string]float64{"x": 1, "z": 2},
		Foods: map[string]FoodInfo{
			"food-a": food("food-a", "x", "y"),
			"food-b": food("food-b", "z"),
			"food-c": food("food-c", "z"),
		},
	}

	ranked := RankTopK(snap, 10)
	require.Len(t, ranked, 3)

	assert.Equal(t, "food-b", ranked[0].Food.ID)
	assert.InDelta(t, 3.0, ranked[0].Score, 1e-9)

	assert.Equal(t, "food-a", ranked[1].Food.ID)
	assert.InDelta(t, 1.5, ranked[1].Score, 1e-9)

	assert.Equal(t, "food-c", ranked[2].Food.ID)
	assert.InDelta(t, 1.5, ranked[2].Score, 1e-9)
}

func TestRankTopKSumsBranchesPerFood(t *testing.T) {
	// f2 is both cart-added directly and similar to the purchased f1, so it
	// collects scoreA + scoreB.
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "f1", Kind: DirectPurchased},
			{FoodID: "f2", Kind: DirectAddedToCart},
		},
		Similar: []SimilarityEdge{
			{Source: "f1", Target: "f2", Score: 0.8},
		},
		Interest: map[string]float64{"t": 2},
		Foods: map[string]FoodInfo{
			"f1": food("f1", "t"),
			"f2": food("f2", "t"),
		},
	}

	ranked := RankTopK(snap, 10)
	require.Len(t, ranked, 2)

	// f1: 1.5*2 = 3. f2: direct 1.0*2 = 2, plus avg(1.5*0.8) * 2 = 2.4.
	assert.Equal(t, "f1", ranked[0].Food.ID)
	assert.InDelta(t, 3.0, ranked[0].Score, 1e-9)
	assert.Equal(t, "f2", ranked[1].Food.ID)
	assert.InDelta(t, 2.0+2.4, ranked[1].Score, 1e-9)
}

func TestRankTopKDuplicateDirectEdgesSum(t *testing.T) {
	// A food both purchased and cart-added contributes through both edges.
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "f1", Kind: DirectPurchased},
			{FoodID: "f1", Kind: DirectAddedToCart},
		},
		Interest: map[string]float64{"t": 2},
		Foods:    map[string]FoodInfo{"f1": food("f1", "t")},
	}

	ranked := RankTopK(snap, 10)
	require.Len(t, ranked, 1)
	assert.InDelta(t, (1.5+1.0)*2, ranked[0].Score, 1e-9)
}

func TestRankTopKAveragesSimilarityPaths(t *testing.T) {
	// Candidate reachable from two purchased foods gets the mean of the
	// weighted similarities, not the sum.
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "f1", Kind: DirectPurchased},
			{FoodID: "f2", Kind: DirectAddedToCart},
		},
		Similar: []SimilarityEdge{
			{Source: "f1", Target: "f3", Score: 0.8},
			{Source: "f2", Target: "f3", Score: 0.4},
		},
		Interest: map[string]float64{"t": 1},
		Foods: map[string]FoodInfo{
			"f1": food("f1"),
			"f2": food("f2"),
			"f3": food("f3", "t"),
		},
	}

	ranked := RankTopK(snap, 10)
	require.Len(t, ranked, 3)

	// mean(1.5*0.8, 1.0*0.4) * 1 = mean(1.2, 0.4) = 0.8
	assert.Equal(t, "f3", ranked[0].Food.ID)
	assert.InDelta(t, 0.8, ranked[0].Score, 1e-9)
}

func TestRankTopKInterestGated(t *testing.T) {
	// Strong purchase history without tag interest scores zero; untagged
	// foods can never score either.
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "tagged", Kind: DirectPurchased},
			{FoodID: "untagged", Kind: DirectPurchased},
		},
		Interest: map[string]float64{"other": 5},
		Foods: map[string]FoodInfo{
			"tagged":   food("tagged", "t"),
			"untagged": food("untagged"),
		},
	}

	ranked := RankTopK(snap, 10)
	require.Len(t, ranked, 2)
	assert.InDelta(t, 0.0, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.0, ranked[1].Score, 1e-9)
	// Tied at zero: id order.
	assert.Equal(t, "tagged", ranked[0].Food.ID)
	assert.Equal(t, "untagged", ranked[1].Food.ID)
}

func TestRankTopKTruncation(t *testing.T) {
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "f1", Kind: DirectPurchased},
			{FoodID: "f2", Kind: DirectPurchased},
			{FoodID: "f3", Kind: DirectPurchased},
		},
		Interest: map[string]float64{"a": 3, "b": 2, "c": 1},
		Foods: map[string]FoodInfo{
			"f1": food("f1", "a"),
			"f2": food("f2", "b"),
			"f3": food("f3", "c"),
		},
	}

	top2 := RankTopK(snap, 2)
	require.Len(t, top2, 2)
	assert.Equal(t, "f1", top2[0].Food.ID)
	assert.Equal(t, "f2", top2[1].Food.ID)

	// k beyond the candidate count returns all candidates, no padding.
	all := RankTopK(snap, 50)
	assert.Len(t, all, 3)
}

func TestRankTopKDeterministic(t *testing.T) {
	snap := Snapshot{
		Direct: []DirectEdge{
			{FoodID: "f2", Kind: DirectPurchased},
			{FoodID: "f1", Kind: DirectPurchased},
			{FoodID: "f3", Kind: DirectPurchased},
		},
		Interest: map[string]float64{"t": 1},
		Foods: map[string]FoodInfo{
			"f1": food("f1", "t"),
			"f2": food("f2", "t"),
			"f3": food("f3", "t"),
		},
	}

	first := RankTopK(snap, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RankTopK(snap, 10))
	}
}
