package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/database"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/models"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

// RecommendationService reads graph state and produces ranked output. Every
// call recomputes from current state; no scores are cached.
type RecommendationService struct {
	client *database.Client
	log    *zap.SugaredLogger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(client *database.Client, log *zap.SugaredLogger) *RecommendationService {
	return &RecommendationService{client: client, log: log}
}

// TopK returns the user's top-k recommended foods, highest score first.
// A user without qualifying interactions, or k <= 0, yields an empty list.
func (s *RecommendationService) TopK(ctx context.Context, userID string, k int) ([]models.Recommendation, error) {
	if k <= 0 {
		return nil, nil
	}

	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := scoring.RankTopK(snap, k)
	recs := make([]models.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		recs = append(recs, models.Recommendation{
			FoodID:   r.Food.ID,
			Name:     r.Food.Name,
			ImageURL: r.Food.ImageURL,
			Score:    r.Score,
		})
	}
	return recs, nil
}

// loadSnapshot assembles the graph state one ranking call operates on: the
// user's direct edges, the similarity neighborhood of those foods, the
// user's tag-interest map and the candidates' attributes.
func (s *RecommendationService) loadSnapshot(ctx context.Context, userID string) (scoring.Snapshot, error) {
	directQuery := `
		MATCH (u:User {id: $userId})-[r:PURCHASED|ADDED_TO_CART]->(f:Food)
		RETURN f.id AS id, type(r) AS rel
	`
	directRows, err := s.client.ExecuteRead(ctx, directQuery, map[string]any{"userId": userID})
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("failed to load direct interactions: %w", err)
	}

	direct := parseDirectRows(directRows)
	if len(direct) == 0 {
		return scoring.Snapshot{}, nil
	}

	directIDs := distinctFoodIDs(direct)

	similarQuery := `
		UNWIND $foodIds AS foodId
		MATCH (f1:Food {id: foodId})-[s:SIMILAR_TO]-(f2:Food)
		RETURN foodId AS source, f2.id AS target, s.score AS score
	`
	similarRows, err := s.client.ExecuteRead(ctx, similarQuery, map[string]any{"foodIds": directIDs})
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("failed to load similarity neighborhood: %w", err)
	}
	similar := parseSimilarityRows(similarRows)

	interestQuery := `
		MATCH (u:User {id: $userId})-[si:SHOWN_INTEREST]->(t:Tag)
		RETURN t.name AS tag, si.count AS count
	`
	interestRows, err := s.client.ExecuteRead(ctx, interestQuery, map[string]any{"userId": userID})
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("failed to load tag interest: %w", err)
	}

	candidateIDs := append([]string{}, directIDs...)
	seen := make(map[string]struct{}, len(directIDs))
	for _, id := range directIDs {
		seen[id] = struct{}{}
	}
	for _, edge := range similar {
		if _, ok := seen[edge.Target]; !ok {
			seen[edge.Target] = struct{}{}
			candidateIDs = append(candidateIDs, edge.Target)
		}
	}

	foodQuery := `
		UNWIND $foodIds AS foodId
		MATCH (f:Food {id: foodId})
		OPTIONAL MATCH (f)-[:HAS_TAG]->(t:Tag)
		RETURN f.id AS id, f.name AS name, f.imageUrl AS imageUrl,
		       collect(t.name) AS tags
	`
	foodRows, err := s.client.ExecuteRead(ctx, foodQuery, map[string]any{"foodIds": candidateIDs})
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("failed to load candidate foods: %w", err)
	}

	return scoring.Snapshot{
		Direct:   direct,
		Similar:  similar,
		Interest: parseInterestRows(interestRows),
		Foods:    parseFoodRows(foodRows),
	}, nil
}

// Preferences returns the user's top recommended foods together with the
// tags they have shown the most interest in.
func (s *RecommendationService) Preferences(ctx context.Context, userID string, topFoods, topTags int) (models.PreferenceSummary, error) {
	summary := models.PreferenceSummary{
		TopFoods: []models.Recommendation{},
		TopTags:  []models.TagInterest{},
	}

	foods, err := s.TopK(ctx, userID, topFoods)
	if err != nil {
		return summary, err
	}
	if len(foods) > 0 {
		summary.TopFoods = foods
	}

	if topTags <= 0 {
		return summary, nil
	}

	query := `
		MATCH (u:User {id: $userId})-[si:SHOWN_INTEREST]->(t:Tag)
		RETURN
			t.name AS tag,
			sum(si.count) AS strength
		ORDER BY strength DESC, tag
		LIMIT toInteger($limit)
	`
	rows, err := s.client.ExecuteRead(ctx, query, map[string]any{
		"userId": userID,
		"limit":  topTags,
	})
	if err != nil {
		return summary, fmt.Errorf("failed to load top tags: %w", err)
	}

	for _, row := range rows {
		name, _ := row["tag"].(string)
		summary.TopTags = append(summary.TopTags, models.TagInterest{
			Name:          name,
			TotalInterest: toFloat(row["strength"]),
		})
	}
	return summary, nil
}

// SimilarForSet returns foods similar to any member of the given set,
// excluding the set itself, ranked by the maximum similarity score to any
// member. Ties order by food id.
func (s *RecommendationService) SimilarForSet(ctx context.Context, foodIDs []string, limit int) ([]models.SimilarFood, error) {
	if len(foodIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	query := `
		UNWIND $foodIds AS foodId
		MATCH (f:Food {id: foodId})-[r:SIMILAR_TO]-(f2:Food)
		WHERE NOT f2.id IN $foodIds
		WITH f2, max(r.score) AS maxScore
		RETURN f2.id AS id, f2.name AS name
		ORDER BY maxScore DESC, id
		LIMIT toInteger($limit)
	`
	rows, err := s.client.ExecuteRead(ctx, query, map[string]any{
		"foodIds": foodIDs,
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load similar foods: %w", err)
	}

	similar := make([]models.SimilarFood, 0, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		name, _ := row["name"].(string)
		similar = append(similar, models.SimilarFood{FoodID: id, Name: name})
	}
	return similar, nil
}

// RecentActivity returns the foods the user most recently added to cart or
// purchased, newest first, with every observed relationship kind and the
// food's tags.
func (s *RecommendationService) RecentActivity(ctx context.Context, userID string, limit int) ([]models.RecentActivity, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		MATCH (u:User {id: $userId})-[r:PURCHASED|ADDED_TO_CART]->(f:Food)
		WITH
			f,
			collect(DISTINCT type(r)) AS actions,
			max(r.latest_datetime) AS latest_action_datetime
		ORDER BY latest_action_datetime DESC
		LIMIT toInteger($limit)

		OPTIONAL MATCH (f)-[:HAS_TAG]->(t:Tag)
		RETURN
			f.id AS id,
			f.name AS name,
			actions,
			latest_action_datetime,
			collect(t.name) AS tags
	`
	rows, err := s.client.ExecuteRead(ctx, query, map[string]any{
		"userId": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	return parseActivityRows(rows), nil
}

func distinctFoodIDs(direct []scoring.DirectEdge) []string {
	seen := make(map[string]struct{}, len(direct))
	ids := make([]string, 0, len(direct))
	for _, d := range direct {
		if _, ok := seen[d.FoodID]; ok {
			continue
		}
		seen[d.FoodID] = struct{}{}
		ids = append(ids, d.FoodID)
	}
	return ids
}
