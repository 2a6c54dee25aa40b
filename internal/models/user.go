package models

import "time"

// User is an account that authors recipes and holds relation memberships.
// Authentication happens upstream; the engine only ever sees user IDs.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
