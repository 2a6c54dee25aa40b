package shoppinglist

import (
	"context"

	"foodgram/internal/models"
)

// Store defines the read operations the shopping list is built from.
type Store interface {
	CartLines(ctx context.Context, userID int64) ([]models.IngredientLine, error)
	CartRecipeNames(ctx context.Context, userID int64) ([]string, error)
}

// Service builds the downloadable shopping list for a user's cart. It
// is read-only; generating the report twice for an unchanged cart
// produces byte-identical text.
type Service interface {
	Report(ctx context.Context, userID int64) (string, error)
}

type service struct {
	store Store
}

// New constructs a shopping list Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Report(ctx context.Context, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lines, err := s.store.CartLines(ctx, userID)
	if err != nil {
		return "", err
	}
	names, err := s.store.CartRecipeNames(ctx, userID)
	if err != nil {
		return "", err
	}

	return RenderReport(Aggregate(lines), names), nil
}
