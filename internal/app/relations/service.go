package relations

import (
	"context"
	"fmt"

	"foodgram/internal/models"
)

// Op selects the direction of a relation toggle.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Store defines persistence operations required for relation toggles.
type Store interface {
	AddRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) (*models.Relation, error)
	RemoveRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) error
	IsInRelation(ctx context.Context, kind models.Kind, userID, recipeID int64) (bool, error)
}

// Service describes the favorite and shopping-cart toggles. One
// parametrized operation covers both kinds; the store's uniqueness
// constraint makes a duplicate add and an absent remove distinct,
// reported errors rather than silent no-ops.
type Service interface {
	Toggle(ctx context.Context, kind models.Kind, userID, recipeID int64, op Op) (*models.Relation, error)
	Has(ctx context.Context, kind models.Kind, userID, recipeID int64) (bool, error)
}

type service struct {
	store Store
}

// New constructs a relations Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Toggle(ctx context.Context, kind models.Kind, userID, recipeID int64, op Op) (*models.Relation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown relation kind %q", kind)
	}

	switch op {
	case OpAdd:
		return s.store.AddRelation(ctx, kind, userID, recipeID)
	case OpRemove:
		return nil, s.store.RemoveRelation(ctx, kind, userID, recipeID)
	default:
		return nil, fmt.Errorf("unknown toggle op %q", op)
	}
}

func (s *service) Has(ctx context.Context, kind models.Kind, userID, recipeID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.IsInRelation(ctx, kind, userID, recipeID)
}
