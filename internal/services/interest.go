package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/database"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

// InterestService applies interaction events to the graph: the per-tag
// SHOWN_INTEREST increments and, for cart-adds and purchases, the direct
// recency edge. Every write is a single MERGE statement so concurrent
// increments to the same (user, tag) edge serialize in the store.
type InterestService struct {
	client *database.Client
	log    *zap.SugaredLogger
}

// NewInterestService creates a new interest accumulator.
func NewInterestService(client *database.Client, log *zap.SugaredLogger) *InterestService {
	return &InterestService{client: client, log: log}
}

// Record applies one interaction. Viewed and cart-add take exactly one food;
// a purchase may cover several foods from one checkout. A food or user the
// graph does not know matches nothing and the write is a no-op.
func (s *InterestService) Record(ctx context.Context, kind scoring.InteractionKind, userID string, foodIDs []string) error {
	if len(foodIDs) == 0 {
		return fmt.Errorf("no food ids for %s interaction", kind)
	}
	if kind != scoring.KindPurchased && len(foodIDs) != 1 {
		return fmt.Errorf("%s interaction takes exactly one food id", kind)
	}

	var err error
	switch kind {
	case scoring.KindViewed:
		err = s.recordView(ctx, userID, foodIDs[0])
	case scoring.KindCartAdd:
		err = s.recordCartAdd(ctx, userID, foodIDs[0])
	case scoring.KindPurchased:
		err = s.recordPurchase(ctx, userID, foodIDs)
	default:
		return fmt.Errorf("unknown interaction kind %v", kind)
	}
	if err != nil {
		return err
	}

	s.log.Infow("interaction recorded",
		"kind", kind.String(), "user_id", userID, "foods", len(foodIDs))
	return nil
}

// recordView bumps SHOWN_INTEREST for every tag of the viewed food.
func (s *InterestService) recordView(ctx context.Context, userID, foodID string) error {
	query := `
		MATCH (u:User {id: $userId})
		MATCH (f:Food {id: $foodId})

		WITH u, f
		MATCH (f)-[:HAS_TAG]->(t:Tag)

		MERGE (u)-[r:SHOWN_INTEREST]->(t)
		ON CREATE SET r.count = $weight
		ON MATCH SET r.count = r.count + $weight
	`
	err := s.client.ExecuteWrite(ctx, query, map[string]any{
		"userId": userID,
		"foodId": foodID,
		"weight": scoring.KindViewed.Weight(),
	})
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// recordCartAdd upserts the ADDED_TO_CART edge (latest occurrence only) and
// bumps SHOWN_INTEREST for every tag of the food.
func (s *InterestService) recordCartAdd(ctx context.Context, userID, foodID string) error {
	query := `
		MATCH (u:User {id: $userId})
		MATCH (f:Food {id: $foodId})

		MERGE (u)-[added_rel:ADDED_TO_CART]->(f)
		SET added_rel.latest_datetime = datetime()

		WITH u, f
		MATCH (f)-[:HAS_TAG]->(t:Tag)

		MERGE (u)-[r:SHOWN_INTEREST]->(t)
		ON CREATE SET r.count = $weight
		ON MATCH SET r.count = r.count + $weight
	`
	err := s.client.ExecuteWrite(ctx, query, map[string]any{
		"userId": userID,
		"foodId": foodID,
		"weight": scoring.KindCartAdd.Weight(),
	})
	if err != nil {
		return fmt.Errorf("failed to record cart add: %w", err)
	}
	return nil
}

// recordPurchase upserts PURCHASED edges for every food in the checkout and
// bumps SHOWN_INTEREST per tag of each food.
func (s *InterestService) recordPurchase(ctx context.Context, userID string, foodIDs []string) error {
	query := `
		MATCH (u:User {id: $userId})

		UNWIND $foodIds AS foodId
		MATCH (f:Food {id: foodId})

		MERGE (u)-[purchased_rel:PURCHASED]->(f)
		SET purchased_rel.latest_datetime = datetime()

		WITH u, f
		MATCH (f)-[:HAS_TAG]->(t:Tag)

		MERGE (u)-[r:SHOWN_INTEREST]->(t)
		ON CREATE SET r.count = $weight
		ON MATCH SET r.count = r.count + $weight
	`
	err := s.client.ExecuteWrite(ctx, query, map[string]any{
		"userId":  userID,
		"foodIds": foodIDs,
		"weight":  scoring.KindPurchased.Weight(),
	})
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}
