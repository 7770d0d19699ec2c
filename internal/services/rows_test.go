package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

func TestParseDirectRows(t *testing.T) {
	rows := []map[string]any{
		{"id": "f1", "rel": "PURCHASED"},
		{"id": "f1", "rel": "ADDED_TO_CART"},
		{"id": "f2", "rel": "ADDED_TO_CART"},
		{"id": "f3", "rel": "SHOWN_INTEREST"},
		{"id": "", "rel": "PURCHASED"},
	}

	edges := parseDirectRows(rows)
	require.Len(t, edges, 3)
	assert.Equal(t, scoring.DirectEdge{FoodID: "f1", Kind: scoring.DirectPurchased}, edges[0])
	assert.Equal(t, scoring.DirectEdge{FoodID: "f1", Kind: scoring.DirectAddedToCart}, edges[1])
	assert.Equal(t, scoring.DirectEdge{FoodID: "f2", Kind: scoring.DirectAddedToCart}, edges[2])
}

func TestParseSimilarityRows(t *testing.T) {
	rows := []map[string]any{
		{"source": "f1", "target": "f2", "score": 0.5},
		{"source": "f1", "target": "f3", "score": int64(1)},
		{"source": "", "target": "f4", "score": 0.9},
	}

	edges := parseSimilarityRows(rows)
	require.Len(t, edges, 2)
	assert.Equal(t, scoring.SimilarityEdge{Source: "f1", Target: "f2", Score: 0.5}, edges[0])
	assert.Equal(t, scoring.SimilarityEdge{Source: "f1", Target: "f3", Score: 1.0}, edges[1])
}

func TestParseInterestRows(t *testing.T) {
	rows := []map[string]any{
		{"tag": "pizza", "count": 1.55},
		{"tag": "sushi", "count": int64(2)},
		{"tag": "", "count": 9.0},
	}

	interest := parseInterestRows(rows)
	require.Len(t, interest, 2)
	assert.InDelta(t, 1.55, interest["pizza"], 1e-9)
	assert.InDelta(t, 2.0, interest["sushi"], 1e-9)
}

func TestParseFoodRows(t *testing.T) {
	rows := []map[string]any{
		{"id": "f1", "name": "Margherita", "imageUrl": "https://img/f1", "tags": []any{"pizza", "cheese"}},
		{"id": "f2", "name": "Mystery", "imageUrl": "https://img/f2", "tags": []any{nil}},
	}

	foods := parseFoodRows(rows)
	require.Len(t, foods, 2)
	assert.Equal(t, []string{"pizza", "cheese"}, foods["f1"].Tags)
	assert.Equal(t, "Margherita", foods["f1"].Name)
	// Tagless food: collect over the optional match yields a single null.
	assert.Empty(t, foods["f2"].Tags)
}

func TestParseActivityRows(t *testing.T) {
	latest := time.Date(2026, 8, 30, 18, 4, 5, 0, time.UTC)
	rows := []map[string]any{
		{
			"id":                     "f1",
			"name":                   "Margherita",
			"actions":                []any{"PURCHASED", "ADDED_TO_CART"},
			"latest_action_datetime": latest,
			"tags":                   []any{"pizza"},
		},
		{"id": "", "name": "skipped"},
	}

	activity := parseActivityRows(rows)
	require.Len(t, activity, 1)
	assert.Equal(t, "f1", activity[0].FoodID)
	assert.Equal(t, []string{"PURCHASED", "ADDED_TO_CART"}, activity[0].Actions)
	assert.Equal(t, latest, activity[0].LatestAt)
	assert.Equal(t, []string{"pizza"}, activity[0].Tags)
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 1.5, toFloat(1.5))
	assert.Equal(t, 2.0, toFloat(int64(2)))
	assert.Equal(t, 3.0, toFloat(3))
	assert.Equal(t, 0.0, toFloat("nan"))
	assert.Equal(t, 0.0, toFloat(nil))
}
