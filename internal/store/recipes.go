package store

import (
	"context"
	"fmt"

	"foodgram/internal/models"
)

// CartLines returns every ingredient line of every recipe in the user's
// shopping cart, one row per (recipe, ingredient) line. Aggregation
// happens in the shopping list service; the store only reads.
func (s *Store) CartLines(ctx context.Context, userID int64) ([]models.IngredientLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.measurement_unit, ri.amount
		FROM user_recipe_relations rel
		JOIN recipe_ingredients ri ON ri.recipe_id = rel.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE rel.user_id = $1 AND rel.kind = 'shopping_cart'
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	var lines []models.IngredientLine
	for rows.Next() {
		var line models.IngredientLine
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}

	return lines, nil
}

// CartRecipeNames returns the names of the recipes in the user's
// shopping cart, sorted ascending. A recipe with no ingredient lines
// still shows up here.
func (s *Store) CartRecipeNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.name
		FROM user_recipe_relations rel
		JOIN recipes r ON r.id = rel.recipe_id
		WHERE rel.user_id = $1 AND rel.kind = 'shopping_cart'
		ORDER BY r.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart recipes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan recipe name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe names: %w", err)
	}

	return names, nil
}
