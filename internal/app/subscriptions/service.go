package subscriptions

import (
	"context"

	"foodgram/internal/models"
)

// Store defines persistence operations required for subscription workflows.
type Store interface {
	Subscribe(ctx context.Context, userID, authorID int64) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error)
	SubscribedAuthors(ctx context.Context, userID int64, limit int) ([]*models.SubscribedAuthor, error)
}

// Service describes high level subscription operations.
type Service interface {
	Subscribe(ctx context.Context, userID, authorID int64) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error)
	// ListAuthorsFollowedBy lists followed authors with their recent
	// recipes truncated to limit. Any non-positive limit is treated as
	// unbounded, not an error.
	ListAuthorsFollowedBy(ctx context.Context, userID int64, limit int) ([]*models.SubscribedAuthor, error)
}

type service struct {
	store Store
}

// New constructs a subscriptions Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Subscribe(ctx context.Context, userID, authorID int64) (*models.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Subscribe(ctx, userID, authorID)
}

func (s *service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.Unsubscribe(ctx, userID, authorID)
}

func (s *service) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.IsSubscribed(ctx, userID, authorID)
}

func (s *service) ListAuthorsFollowedBy(ctx context.Context, userID int64, limit int) ([]*models.SubscribedAuthor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}
	return s.store.SubscribedAuthors(ctx, userID, limit)
}
