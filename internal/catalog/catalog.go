// Package catalog models the static delivery catalog (foods, restaurants,
// menus) that seeds the graph at ingestion time.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Diet holds the nested dietary attributes a food declares.
type Diet struct {
	Vegetarian bool `json:"vegetarian"`
}

// Food is one catalog item. Immutable after ingestion.
type Food struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Diet        Diet     `json:"diet"`
	Tags        []string `json:"tags"`
}

// Restaurant is a vendor offering foods through a menu.
type Restaurant struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ImageURL         string   `json:"imageUrl"`
	Tagline          string   `json:"tagline"`
	Rating           float64  `json:"rating"`
	DeliveryFeeCents int64    `json:"deliveryFeeCents"`
	Cuisines         []string `json:"cuisines"`
}

// MenuItem lists one food on a restaurant's menu.
type MenuItem struct {
	FoodID      string `json:"foodId"`
	PriceCents  int64  `json:"priceCents"`
	IsAvailable bool   `json:"isAvailable"`
	Popular     bool   `json:"popular"`
}

// Menu is a restaurant's full listing.
type Menu struct {
	RestaurantID string     `json:"restaurantId"`
	Items        []MenuItem `json:"items"`
}

// Meta carries catalog-wide attributes.
type Meta struct {
	Currency string `json:"currency"`
}

// Catalog is the full static dataset loaded into the graph.
type Catalog struct {
	Meta        Meta         `json:"meta"`
	Foods       []Food       `json:"foods"`
	Restaurants []Restaurant `json:"restaurants"`
	Menus       []Menu       `json:"menus"`
}

// NormalizeTag folds a tag name to its canonical form. Every tag write and
// match goes through this, so differently cased spellings collapse to one
// Tag node.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Parse decodes a catalog from JSON.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &cat, nil
}

// Load reads and decodes a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// DistinctTags returns every tag used across the food catalog, normalized,
// deduplicated and sorted.
func (c *Catalog) DistinctTags() []string {
	seen := make(map[string]struct{})
	for _, food := range c.Foods {
		for _, tag := range food.Tags {
			seen[NormalizeTag(tag)] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagSets returns each food's normalized tag set keyed by food id.
func (c *Catalog) TagSets() map[string][]string {
	sets := make(map[string][]string, len(c.Foods))
	for _, food := range c.Foods {
		tags := make([]string, 0, len(food.Tags))
		for _, tag := range food.Tags {
			tags = append(tags, NormalizeTag(tag))
		}
		sets[food.ID] = tags
	}
	return sets
}
