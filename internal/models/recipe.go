package models

import "time"

// Recipe is a published recipe. FavoritesCount is denormalized and is
// only ever written by the favorite recount, never by request handlers.
type Recipe struct {
	ID             int64     `json:"id" db:"id"`
	AuthorID       int64     `json:"author_id" db:"author_id"`
	Name           string    `json:"name" db:"name"`
	Tags           []string  `json:"tags" db:"tags"`
	PubDate        time.Time `json:"pub_date" db:"pub_date"`
	FavoritesCount int64     `json:"favorites_count" db:"favorites_count"`
}

// IngredientLine is one ingredient entry of a recipe. Amount is a
// positive integer count of the ingredient's measurement unit.
type IngredientLine struct {
	IngredientID    int64  `json:"ingredient_id" db:"ingredient_id"`
	Name            string `json:"name" db:"name"`
	MeasurementUnit string `json:"measurement_unit" db:"measurement_unit"`
	Amount          int64  `json:"amount" db:"amount"`
}
