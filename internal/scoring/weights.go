// Package scoring holds the pure scoring core of the recommendation engine:
// the interaction weight policy, the tag-overlap similarity metric and the
// two-branch ranking procedure. Nothing in here touches the graph store.
package scoring

import "fmt"

// InteractionKind enumerates the user interactions that feed SHOWN_INTEREST.
type InteractionKind int

const (
	KindViewed InteractionKind = iota
	KindCartAdd
	KindPurchased
)

// interactionWeights is the per-tag SHOWN_INTEREST increment applied for
// each interaction kind. The policy lives in this one table.
var interactionWeights = map[InteractionKind]float64{
	KindViewed:    0.05,
	KindCartAdd:   0.5,
	KindPurchased: 1.0,
}

// ParseInteractionKind maps the wire names accepted by the API.
func ParseInteractionKind(s string) (InteractionKind, error) {
	switch s {
	case "viewed":
		return KindViewed, nil
	case "cart_add":
		return KindCartAdd, nil
	case "purchased":
		return KindPurchased, nil
	}
	return 0, fmt.Errorf("unknown interaction kind %q", s)
}

func (k InteractionKind) String() string {
	switch k {
	case KindViewed:
		return "viewed"
	case KindCartAdd:
		return "cart_add"
	case KindPurchased:
		return "purchased"
	}
	return fmt.Sprintf("InteractionKind(%d)", int(k))
}

// Weight returns the per-tag interest increment for the interaction kind.
func (k InteractionKind) Weight() float64 {
	return interactionWeights[k]
}

// DirectKind enumerates the direct User->Food relationship kinds that anchor
// the ranker.
type DirectKind int

const (
	DirectPurchased DirectKind = iota
	DirectAddedToCart
)

// Relationship type names as stored in the graph.
const (
	RelPurchased   = "PURCHASED"
	RelAddedToCart = "ADDED_TO_CART"
)

var directWeights = map[DirectKind]float64{
	DirectPurchased:   1.5,
	DirectAddedToCart: 1.0,
}

// DirectKindFromRelationship maps a graph relationship type to its ranking
// kind. The second return is false for relationship types that do not anchor
// recommendations.
func DirectKindFromRelationship(rel string) (DirectKind, bool) {
	switch rel {
	case RelPurchased:
		return DirectPurchased, true
	case RelAddedToCart:
		return DirectAddedToCart, true
	}
	return 0, false
}

func (k DirectKind) String() string {
	switch k {
	case DirectPurchased:
		return RelPurchased
	case DirectAddedToCart:
		return RelAddedToCart
	}
	return fmt.Sprintf("DirectKind(%d)", int(k))
}

// Weight returns the base weight a direct relationship contributes to both
// ranking branches.
func (k DirectKind) Weight() float64 {
	return directWeights[k]
}
