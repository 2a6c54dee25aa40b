package models

import "time"

// Kind selects which user-recipe relation a toggle operates on.
type Kind string

const (
	KindFavorite     Kind = "favorite"
	KindShoppingCart Kind = "shopping_cart"
)

// Valid reports whether k is a known relation kind.
func (k Kind) Valid() bool {
	return k == KindFavorite || k == KindShoppingCart
}

// Relation is a (user, recipe) membership row. At most one row exists
// per (user, recipe, kind), enforced by a storage-level constraint.
type Relation struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	RecipeID  int64     `json:"recipe_id" db:"recipe_id"`
	Kind      Kind      `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
