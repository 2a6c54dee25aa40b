package models

import "time"

// Subscription is a (user, author) follow row. Self-subscription is
// rejected before the row ever reaches storage.
type Subscription struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubscribedAuthor is the read view for the subscription listing:
// the author, their most recent recipes (possibly truncated), and the
// untruncated total recipe count.
type SubscribedAuthor struct {
	Author      User     `json:"author"`
	Recipes     []Recipe `json:"recipes"`
	RecipeCount int64    `json:"recipes_count"`
}
