package models

import "time"

// Recommendation is a ranked food returned by the recommendation engine.
type Recommendation struct {
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Score    float64 `json:"score"`
}

// TagInterest is the accumulated interest a user has shown in a single tag.
type TagInterest struct {
	Name          string  `json:"name"`
	TotalInterest float64 `json:"total_interest"`
}

// PreferenceSummary bundles a user's top recommended foods with the tags
// they have shown the most interest in.
type PreferenceSummary struct {
	TopFoods []Recommendation `json:"top_foods"`
	TopTags  []TagInterest    `json:"top_tags"`
}

// SimilarFood is a food related to a set of other foods via SIMILAR_TO edges.
type SimilarFood struct {
	FoodID string `json:"food_id"`
	Name   string `json:"name"`
}

// RecentActivity is one food the user recently added to cart or purchased,
// with every direct relationship kind observed and the latest occurrence.
type RecentActivity struct {
	FoodID   string    `json:"food_id"`
	Name     string    `json:"name"`
	Actions  []string  `json:"actions"`
	LatestAt time.Time `json:"latest_at"`
	Tags     []string  `json:"tags"`
}
