package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrRelationExists signals the (user, recipe) pair already holds
	// the relation being added.
	ErrRelationExists = errors.New("relation already exists")
	// ErrRelationNotFound signals a toggle-off on a relation that is
	// not present.
	ErrRelationNotFound = errors.New("relation not found")
	// ErrSubscriptionExists signals the user already follows the author.
	ErrSubscriptionExists = errors.New("subscription already exists")
	// ErrSubscriptionNotFound signals an unsubscribe without a matching follow.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSelfSubscribe rejects a user subscribing to themselves.
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")
	// ErrLinkNotFound indicates no short link matches the token or recipe.
	ErrLinkNotFound = errors.New("short link not found")
	// ErrLinkInactive indicates the token exists but has been revoked.
	ErrLinkInactive = errors.New("short link is inactive")
	// ErrLinkExists signals the recipe already has an active short link.
	ErrLinkExists = errors.New("recipe already has an active short link")
	// ErrTokenTaken indicates the drawn token collided with an existing
	// one; callers retry with a fresh draw.
	ErrTokenTaken = errors.New("token already taken")
	// ErrRecipeNotFound indicates the referenced recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// constraintName extracts the violated constraint's name, if the error
// carries one.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
