package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foodgram/internal/models"
)

// AddRelation inserts a (user, recipe) relation of the given kind.
// Duplicate inserts surface as ErrRelationExists via the table's
// uniqueness constraint, so two concurrent adds for the same pair yield
// exactly one success. A favorite add recounts the recipe's
// favorites_count in the same transaction.
func (s *Store) AddRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) (*models.Relation, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown relation kind %q", kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var rel models.Relation
	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_recipe_relations (user_id, recipe_id, kind, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, recipe_id, kind, created_at
	`, userID, recipeID, string(kind), time.Now().UTC()).Scan(
		&rel.ID, &rel.UserID, &rel.RecipeID, &rel.Kind, &rel.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRelationExists
		}
		if isForeignKeyViolation(err) {
			return nil, relationReferenceError(err)
		}
		return nil, fmt.Errorf("insert relation: %w", err)
	}

	if kind == models.KindFavorite {
		if err = s.recountFavorites(ctx, tx, recipeID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit relation: %w", err)
	}

	return &rel, nil
}

// RemoveRelation deletes a (user, recipe) relation of the given kind.
// Removing an absent relation reports ErrRelationNotFound. A favorite
// removal recounts the recipe's favorites_count in the same transaction.
func (s *Store) RemoveRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown relation kind %q", kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, `
		DELETE FROM user_recipe_relations
		WHERE user_id = $1 AND recipe_id = $2 AND kind = $3
	`, userID, recipeID, string(kind))
	if err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = ErrRelationNotFound
		return err
	}

	if kind == models.KindFavorite {
		if err = s.recountFavorites(ctx, tx, recipeID); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit relation: %w", err)
	}

	return nil
}

// IsInRelation reports whether the (user, recipe) pair holds the relation.
func (s *Store) IsInRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown relation kind %q", kind)
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM user_recipe_relations
			WHERE user_id = $1 AND recipe_id = $2 AND kind = $3
		)
	`, userID, recipeID, string(kind)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check relation: %w", err)
	}
	return exists, nil
}

// recountFavorites rewrites the recipe's denormalized favorites_count
// from the live favorite rows. A full recount self-heals any drift, and
// running inside the mutation's transaction keeps the counter from ever
// being observably stale.
func (s *Store) recountFavorites(ctx context.Context, tx *sql.Tx, recipeID int64) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET favorites_count = (
			SELECT COUNT(*) FROM user_recipe_relations
			WHERE recipe_id = $1 AND kind = 'favorite'
		)
		WHERE id = $1
	`, recipeID); err != nil {
		return fmt.Errorf("recount favorites: %w", err)
	}
	return nil
}

// relationReferenceError maps a relation insert's FK violation to the
// missing referent. The schema names the FK per column, so matching on
// the table name can never misattribute the user side.
func relationReferenceError(err error) error {
	if constraintName(err) == "fk_relations_recipe" {
		return ErrRecipeNotFound
	}
	return ErrUserNotFound
}
