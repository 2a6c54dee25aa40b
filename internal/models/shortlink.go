package models

import "time"

// ShortLink maps a short token to a recipe. Tokens are globally unique
// across active and inactive links; rows are never hard-deleted, a
// revoked link keeps its history with Active set to false.
type ShortLink struct {
	ID        int64     `json:"id" db:"id"`
	RecipeID  int64     `json:"recipe_id" db:"recipe_id"`
	Token     string    `json:"token" db:"token"`
	HitCount  int64     `json:"hit_count" db:"hit_count"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
