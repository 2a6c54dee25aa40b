package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"foodgram/internal/models"
)

// Subscribe adds a follow from user to author. Self-subscription is
// rejected before the uniqueness check. Duplicate follows surface as
// ErrSubscriptionExists via the table's uniqueness constraint.
func (s *Store) Subscribe(ctx context.Context, userID, authorID int64) (*models.Subscription, error) {
	if userID == authorID {
		return nil, ErrSelfSubscribe
	}

	var sub models.Subscription
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO subscriptions (user_id, author_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, author_id, created_at
	`, userID, authorID, time.Now().UTC()).Scan(
		&sub.ID, &sub.UserID, &sub.AuthorID, &sub.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSubscriptionExists
		}
		if isForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	return &sub, nil
}

// Unsubscribe removes a follow. Removing an absent follow reports
// ErrSubscriptionNotFound.
func (s *Store) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM subscriptions
		WHERE user_id = $1 AND author_id = $2
	`, userID, authorID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// IsSubscribed reports whether the user follows the author.
func (s *Store) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM subscriptions
			WHERE user_id = $1 AND author_id = $2
		)
	`, userID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return exists, nil
}

// SubscribedAuthors returns every author the user follows, each with
// their most recent recipes truncated to limit and their untruncated
// total recipe count. A non-positive limit means unbounded.
func (s *Store) SubscribedAuthors(ctx context.Context, userID int64, limit int) ([]*models.SubscribedAuthor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY u.username ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select subscribed authors: %w", err)
	}
	defer rows.Close()

	var authors []*models.SubscribedAuthor
	for rows.Next() {
		var author models.User
		if err := rows.Scan(&author.ID, &author.Username, &author.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, &models.SubscribedAuthor{Author: author})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}

	for _, entry := range authors {
		recipes, err := s.authorRecipes(ctx, entry.Author.ID, limit)
		if err != nil {
			return nil, err
		}
		entry.Recipes = recipes

		// The count is taken from the live rows, not the truncated slice.
		if err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM recipes WHERE author_id = $1
		`, entry.Author.ID).Scan(&entry.RecipeCount); err != nil {
			return nil, fmt.Errorf("count author recipes: %w", err)
		}
	}

	return authors, nil
}

func (s *Store) authorRecipes(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, author_id, name, tags, pub_date, favorites_count
		FROM recipes
		WHERE author_id = $1
		ORDER BY pub_date DESC, id DESC
	`)
	args := []any{authorID}
	if limit > 0 {
		query.WriteString(" LIMIT $2")
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select author recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.AuthorID, &recipe.Name,
			pq.Array(&recipe.Tags), &recipe.PubDate, &recipe.FavoritesCount,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	return recipes, nil
}
