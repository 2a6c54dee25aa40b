package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodgram/internal/models"
)

// CreateLink inserts a short link row for the recipe. A collision on the
// token column's uniqueness constraint surfaces as ErrTokenTaken so the
// caller redraws; losing the partial unique index on (recipe_id) WHERE
// active to a concurrent creator surfaces as ErrLinkExists so the caller
// re-reads the winner's link.
func (s *Store) CreateLink(ctx context.Context, recipeID int64, token string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO short_links (recipe_id, token, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, recipe_id, token, hit_count, active, created_at
	`, recipeID, token, time.Now().UTC()).Scan(
		&link.ID, &link.RecipeID, &link.Token, &link.HitCount, &link.Active, &link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "recipe") {
				// Lost the race for this recipe's active link.
				return nil, ErrLinkExists
			}
			return nil, ErrTokenTaken
		}
		if isForeignKeyViolation(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("insert short link: %w", err)
	}

	return &link, nil
}

// ActiveLinkByRecipe returns the recipe's active short link, if any.
func (s *Store) ActiveLinkByRecipe(ctx context.Context, recipeID int64) (*models.ShortLink, error) {
	var link models.ShortLink
	err := s.db.QueryRowContext(ctx, `
		SELECT id, recipe_id, token, hit_count, active, created_at
		FROM short_links
		WHERE recipe_id = $1 AND active
	`, recipeID).Scan(
		&link.ID, &link.RecipeID, &link.Token, &link.HitCount, &link.Active, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("select short link: %w", err)
	}
	return &link, nil
}

// ResolveLink resolves a token to its recipe and counts the hit. The
// increment and the active check are a single UPDATE, so concurrent
// resolutions never lose counts and a revoked link is never counted.
func (s *Store) ResolveLink(ctx context.Context, token string) (int64, error) {
	var recipeID int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE short_links
		SET hit_count = hit_count + 1
		WHERE token = $1 AND active
		RETURNING recipe_id
	`, token).Scan(&recipeID)
	if err == nil {
		return recipeID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("resolve short link: %w", err)
	}

	return 0, s.missedLinkError(ctx, token)
}

// DeactivateLink revokes a short link, keeping the row for history, and
// returns the recipe the link pointed at so callers can drop caches.
// Revoking an already revoked link reports ErrLinkInactive.
func (s *Store) DeactivateLink(ctx context.Context, token string) (int64, error) {
	var recipeID int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE short_links
		SET active = FALSE
		WHERE token = $1 AND active
		RETURNING recipe_id
	`, token).Scan(&recipeID)
	if err == nil {
		return recipeID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("deactivate short link: %w", err)
	}

	return 0, s.missedLinkError(ctx, token)
}

// missedLinkError distinguishes a revoked link from an unknown token
// after an active-only statement matched no rows.
func (s *Store) missedLinkError(ctx context.Context, token string) error {
	var active bool
	err := s.db.QueryRowContext(ctx, `
		SELECT active FROM short_links WHERE token = $1
	`, token).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLinkNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup short link: %w", err)
	}
	return ErrLinkInactive
}

// LinksByRecipe returns every link ever issued for the recipe, newest
// first, including revoked ones.
func (s *Store) LinksByRecipe(ctx context.Context, recipeID int64) ([]*models.ShortLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, token, hit_count, active, created_at
		FROM short_links
		WHERE recipe_id = $1
		ORDER BY created_at DESC, id DESC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("select short links: %w", err)
	}
	defer rows.Close()

	var links []*models.ShortLink
	for rows.Next() {
		var link models.ShortLink
		if err := rows.Scan(
			&link.ID, &link.RecipeID, &link.Token, &link.HitCount, &link.Active, &link.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan short link: %w", err)
		}
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate short links: %w", err)
	}

	return links, nil
}
