package scoring

import "sort"

// DirectEdge is one PURCHASED or ADDED_TO_CART relationship from the user to
// a food. A food the user both purchased and cart-added appears twice, once
// per relationship, and contributes through both.
type DirectEdge struct {
	FoodID string
	Kind   DirectKind
}

// SimilarityEdge links a direct food (Source) to a candidate (Target) with
// the materialized SIMILAR_TO score.
type SimilarityEdge struct {
	Source string
	Target string
	Score  float64
}

// FoodInfo carries the candidate attributes the ranker needs.
type FoodInfo struct {
	ID       string
	Name     string
	ImageURL string
	Tags     []string
}

// Snapshot is the graph state a single ranking call operates on: the user's
// direct edges, the similarity neighborhood of those foods, the user's
// tag-interest map and the attributes of every candidate food.
type Snapshot struct {
	Direct   []DirectEdge
	Similar  []SimilarityEdge
	Interest map[string]float64
	Foods    map[string]FoodInfo
}

// ScoredFood is one ranked candidate.
type ScoredFood struct {
	Food  FoodInfo
	Score float64
}

// RankTopK merges the direct-interaction branch and the similarity-propagated
// branch into a single descending ranking, truncated to k.
//
// Branch A adds directWeight * interest(food) for every direct edge. Branch B
// averages directWeight * similarity over every (direct edge, similarity
// edge) path reaching a candidate, then multiplies by the candidate's
// interest. interest(food) is the sum of the user's SHOWN_INTEREST counts
// over the food's tags, so a candidate without tag interest scores zero on
// both branches. Ties order by food id.
func RankTopK(snap Snapshot, k int) []ScoredFood {
	if k <= 0 || len(snap.Direct) == 0 {
		return nil
	}

	interestOf := func(foodID string) float64 {
		sum := 0.0
		for _, tag := range snap.Foods[foodID].Tags {
			sum += snap.Interest[tag]
		}
		return sum
	}

	simBySource := make(map[string][]SimilarityEdge)
	for _, edge := range snap.Similar {
		simBySource[edge.Source] = append(simBySource[edge.Source], edge)
	}

	scores := make(map[string]float64)
	paths := make(map[string][]float64)

	for _, direct := range snap.Direct {
		scores[direct.FoodID] += direct.Kind.Weight() * interestOf(direct.FoodID)
		for _, edge := range simBySource[direct.FoodID] {
			paths[edge.Target] = append(paths[edge.Target], direct.Kind.Weight()*edge.Score)
		}
	}

	for target, weights := range paths {
		total := 0.0
		for _, w := range weights {
			total += w
		}
		scores[target] += (total / float64(len(weights))) * interestOf(target)
	}

	ranked := make([]ScoredFood, 0, len(scores))
	for foodID, score := range scores {
		food, ok := snap.Foods[foodID]
		if !ok {
			continue
		}
		ranked = append(ranked, ScoredFood{Food: food, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Food.ID < ranked[j].Food.ID
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
