package services

import (
	"time"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/models"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

// Row mappers turning the store's tabular results into scoring inputs.

func parseDirectRows(rows []map[string]any) []scoring.DirectEdge {
	edges := make([]scoring.DirectEdge, 0, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		rel, _ := row["rel"].(string)
		kind, ok := scoring.DirectKindFromRelationship(rel)
		if id == "" || !ok {
			continue
		}
		edges = append(edges, scoring.DirectEdge{FoodID: id, Kind: kind})
	}
	return edges
}

func parseSimilarityRows(rows []map[string]any) []scoring.SimilarityEdge {
	edges := make([]scoring.SimilarityEdge, 0, len(rows))
	for _, row := range rows {
		source, _ := row["source"].(string)
		target, _ := row["target"].(string)
		if source == "" || target == "" {
			continue
		}
		edges = append(edges, scoring.SimilarityEdge{
			Source: source,
			Target: target,
			Score:  toFloat(row["score"]),
		})
	}
	return edges
}

func parseInterestRows(rows []map[string]any) map[string]float64 {
	interest := make(map[string]float64, len(rows))
	for _, row := range rows {
		tag, _ := row["tag"].(string)
		if tag == "" {
			continue
		}
		interest[tag] += toFloat(row["count"])
	}
	return interest
}

func parseFoodRows(rows []map[string]any) map[string]scoring.FoodInfo {
	foods := make(map[string]scoring.FoodInfo, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			continue
		}
		name, _ := row["name"].(string)
		imageURL, _ := row["imageUrl"].(string)
		foods[id] = scoring.FoodInfo{
			ID:       id,
			Name:     name,
			ImageURL: imageURL,
			Tags:     toStrings(row["tags"]),
		}
	}
	return foods
}

func parseActivityRows(rows []map[string]any) []models.RecentActivity {
	activity := make([]models.RecentActivity, 0, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			continue
		}
		name, _ := row["name"].(string)
		latest, _ := row["latest_action_datetime"].(time.Time)
		activity = append(activity, models.RecentActivity{
			FoodID:   id,
			Name:     name,
			Actions:  toStrings(row["actions"]),
			LatestAt: latest,
			Tags:     toStrings(row["tags"]),
		})
	}
	return activity
}

// toFloat converts numeric driver values; counts written as whole numbers
// may come back as integers.
func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func toStrings(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
