package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/catalog"
	"github.com/shivaycb/recommendations-system-for-fooddel/internal/scoring"
)

// Ingestor loads the static catalog into the graph and materializes the
// food similarity edges. Every step is an idempotent upsert, so a partially
// completed run is recovered by re-running from the top.
type Ingestor struct {
	client *Client
	log    *zap.SugaredLogger
}

// NewIngestor creates a catalog ingestor.
func NewIngestor(client *Client, log *zap.SugaredLogger) *Ingestor {
	return &Ingestor{client: client, log: log}
}

// Run executes the full ingestion in dependency order: constraints, tags,
// restaurants, foods (with HAS_TAG links), menus, then the similarity pass.
// The first failing step aborts the run.
func (i *Ingestor) Run(ctx context.Context, cat *catalog.Catalog) error {
	steps := []struct {
		name string
		fn   func(context.Context, *catalog.Catalog) error
	}{
		{"constraints", i.createConstraints},
		{"tags", i.loadTags},
		{"restaurants", i.loadRestaurants},
		{"foods", i.loadFoods},
		{"menus", i.loadMenus},
		{"similar_foods", func(ctx context.Context, _ *catalog.Catalog) error {
			return i.RebuildSimilarity(ctx)
		}},
	}

	for _, step := range steps {
		i.log.Infow("ingestion step starting", "step", step.name)
		if err := step.fn(ctx, cat); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", step.name, err)
		}
		i.log.Infow("ingestion step completed", "step", step.name)
	}
	return nil
}

// createConstraints declares the node-key constraints. Safe to repeat.
func (i *Ingestor) createConstraints(ctx context.Context, _ *catalog.Catalog) error {
	constraints := []string{
		`CREATE CONSTRAINT tag_name_unique IF NOT EXISTS
		 FOR (t:Tag) REQUIRE t.name IS NODE KEY`,
		`CREATE CONSTRAINT restaurant_key IF NOT EXISTS
		 FOR (r:Restaurant) REQUIRE r.id IS NODE KEY`,
		`CREATE CONSTRAINT food_key IF NOT EXISTS
		 FOR (f:Food) REQUIRE f.id IS NODE KEY`,
		`CREATE CONSTRAINT user_key IF NOT EXISTS
		 FOR (u:User) REQUIRE u.id IS NODE KEY`,
	}

	for _, stmt := range constraints {
		if err := i.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// loadTags upserts one Tag node per distinct lowercase tag name.
func (i *Ingestor) loadTags(ctx context.Context, cat *catalog.Catalog) error {
	query := `
		UNWIND $tags AS tag
		MERGE (t:Tag {name: toLower(tag)})
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{
		"tags": cat.DistinctTags(),
	})
}

// loadRestaurants upserts Restaurant nodes with their attributes.
func (i *Ingestor) loadRestaurants(ctx context.Context, cat *catalog.Catalog) error {
	query := `
		UNWIND $rows AS row
		MERGE (r:Restaurant {id: row.id})
		SET
			r.name = row.name,
			r.imageUrl = row.imageUrl,
			r.tagline = row.tagline,
			r.rating = row.rating,
			r.deliveryFeeCents = row.deliveryFeeCents,
			r.cuisines = row.cuisines
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{
		"rows": restaurantRows(cat),
	})
}

// loadFoods upserts Food nodes, derives is_vegetarian from the diet
// attribute and connects each food to its tags.
func (i *Ingestor) loadFoods(ctx context.Context, cat *catalog.Catalog) error {
	query := `
		UNWIND $rows AS row
		MERGE (f:Food {id: row.id})
		SET
			f.name = row.name,
			f.cuisine = row.cuisine,
			f.country = row.country,
			f.description = row.description,
			f.imageUrl = row.imageUrl,
			f.is_vegetarian = row.isVegetarian

		WITH f, row.tags AS tags
		UNWIND tags AS tagName
		MATCH (t:Tag {name: toLower(tagName)})
		MERGE (f)-[:HAS_TAG]->(t)
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{
		"rows": foodRows(cat),
	})
}

// loadMenus connects restaurants to foods. Price, availability and the
// popularity flag are set only when the relationship is first created.
func (i *Ingestor) loadMenus(ctx context.Context, cat *catalog.Catalog) error {
	query := `
		UNWIND $menus AS menu
		MATCH (r:Restaurant {id: menu.restaurantId})

		UNWIND menu.items AS item
		MATCH (f:Food {id: item.foodId})

		MERGE (r)-[menuInfo:HAS_FOOD]->(f)
		ON CREATE SET
			menuInfo.priceCents = item.priceCents,
			menuInfo.isAvailable = item.isAvailable,
			menuInfo.popular = item.popular
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{
		"menus": menuRows(cat),
	})
}

// RebuildSimilarity recomputes the SIMILAR_TO graph from the stored HAS_TAG
// membership. Foods are bucketed by tag so only overlapping pairs are
// compared; each qualifying pair gets a single undirected edge whose score
// is overwritten on recomputation.
func (i *Ingestor) RebuildSimilarity(ctx context.Context) error {
	readQuery := `
		MATCH (f:Food)-[:HAS_TAG]->(t:Tag)
		RETURN f.id AS id, collect(t.name) AS tags
	`
	rows, err := i.client.ExecuteRead(ctx, readQuery, nil)
	if err != nil {
		return err
	}

	tagsByFood := make(map[string][]string, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			continue
		}
		tagsByFood[id] = stringSlice(row["tags"])
	}

	pairs := scoring.SimilarPairs(tagsByFood)
	if len(pairs) == 0 {
		i.log.Infow("no similar food pairs above threshold")
		return nil
	}

	writeQuery := `
		UNWIND $pairs AS pair
		MATCH (f1:Food {id: pair.a})
		MATCH (f2:Food {id: pair.b})
		MERGE (f1)-[r:SIMILAR_TO]-(f2)
		SET r.score = pair.score
	`
	if err := i.client.ExecuteWrite(ctx, writeQuery, map[string]any{
		"pairs": similarityRows(pairs),
	}); err != nil {
		return err
	}

	i.log.Infow("similarity graph rebuilt", "pairs", len(pairs))
	return nil
}

// Status returns node and relationship counts for observability.
func (i *Ingestor) Status(ctx context.Context) (map[string]int64, error) {
	counts := []struct {
		key   string
		query string
	}{
		{"users", `MATCH (u:User) RETURN count(u) AS n`},
		{"foods", `MATCH (f:Food) RETURN count(f) AS n`},
		{"restaurants", `MATCH (r:Restaurant) RETURN count(r) AS n`},
		{"tags", `MATCH (t:Tag) RETURN count(t) AS n`},
		{"has_tag", `MATCH ()-[r:HAS_TAG]->() RETURN count(r) AS n`},
		{"similar_to", `MATCH ()-[r:SIMILAR_TO]-() RETURN count(r)/2 AS n`},
	}

	status := make(map[string]int64, len(counts))
	for _, c := range counts {
		rows, err := i.client.ExecuteRead(ctx, c.query, nil)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			if n, ok := rows[0]["n"].(int64); ok {
				status[c.key] = n
			}
		}
	}
	return status, nil
}

func restaurantRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Restaurants))
	for _, r := range cat.Restaurants {
		rows = append(rows, map[string]any{
			"id":               r.ID,
			"name":             r.Name,
			"imageUrl":         r.ImageURL,
			"tagline":          r.Tagline,
			"rating":           r.Rating,
			"deliveryFeeCents": r.DeliveryFeeCents,
			"cuisines":         r.Cuisines,
		})
	}
	return rows
}

func foodRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Foods))
	for _, f := range cat.Foods {
		rows = append(rows, map[string]any{
			"id":           f.ID,
			"name":         f.Name,
			"cuisine":      f.Cuisine,
			"country":      f.Country,
			"description":  f.Description,
			"imageUrl":     f.ImageURL,
			"isVegetarian": f.Diet.Vegetarian,
			"tags":         f.Tags,
		})
	}
	return rows
}

func menuRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Menus))
	for _, m := range cat.Menus {
		items := make([]map[string]any, 0, len(m.Items))
		for _, item := range m.Items {
			items = append(items, map[string]any{
				"foodId":      item.FoodID,
				"priceCents":  item.PriceCents,
				"isAvailable": item.IsAvailable,
				"popular":     item.Popular,
			})
		}
		rows = append(rows, map[string]any{
			"restaurantId": m.RestaurantID,
			"items":        items,
		})
	}
	return rows
}

func similarityRows(pairs []scoring.SimilarPair) []map[string]any {
	rows := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, map[string]any{
			"a":     p.A,
			"b":     p.B,
			"score": p.Score,
		})
	}
	return rows
}

func stringSlice(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
