package scoring

import "sort"

// SimilarityThreshold is the minimum score at which a SIMILAR_TO edge is
// materialized. The boundary is inclusive.
const SimilarityThreshold = 0.40

// SimilarPair is an unordered food pair with its similarity score.
// A is always the lexicographically smaller id.
type SimilarPair struct {
	A     string
	B     string
	Score float64
}

// TagSimilarity scores two tag sets as the number of shared tags divided by
// the size of the larger set. Tags are expected in canonical lowercase form.
// Empty sets score zero.
func TagSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			shared++
		}
	}

	larger := len(set)
	if len(seen) > larger {
		larger = len(seen)
	}
	return float64(shared) / float64(larger)
}

// SimilarPairs enumerates every unordered pair of distinct foods sharing at
// least one tag and keeps the pairs scoring at or above the threshold.
//
// Foods are bucketed by tag first so only foods with some overlap are ever
// compared; pairs reachable through several shared tags are scored once,
// deduplicated by canonical (smaller id, larger id) ordering. Output is
// sorted by pair identity so repeated runs produce identical batches.
func SimilarPairs(tagsByFood map[string][]string) []SimilarPair {
	buckets := make(map[string][]string)
	for foodID, tags := range tagsByFood {
		for _, tag := range tags {
			buckets[tag] = append(buckets[tag], foodID)
		}
	}

	type pairKey struct{ a, b string }
	scored := make(map[pairKey]float64)

	for _, foods := range buckets {
		for i := 0; i < len(foods); i++ {
			for j := i + 1; j < len(foods); j++ {
				a, b := foods[i], foods[j]
				if a == b {
					continue
				}
				if b < a {
					a, b = b, a
				}
				key := pairKey{a, b}
				if _, done := scored[key]; done {
					continue
				}
				score := TagSimilarity(tagsByFood[a], tagsByFood[b])
				if score >= SimilarityThreshold {
					scored[key] = score
				} else {
					// Remember sub-threshold pairs too, so other shared
					// tags do not rescore them.
					scored[key] = -1
				}
			}
		}
	}

	pairs := make([]SimilarPair, 0, len(scored))
	for key, score := range scored {
		if score < 0 {
			continue
		}
		pairs = append(pairs, SimilarPair{A: key.a, B: key.b, Score: score})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
