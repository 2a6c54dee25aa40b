package subscriptions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"foodgram/internal/models"
	"foodgram/internal/store"
)

type fakeStore struct {
	subscribeErr error
	listedLimit  *int
	authors      []*models.SubscribedAuthor
}

func (f *fakeStore) Subscribe(_ context.Context, userID, authorID int64) (*models.Subscription, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return &models.Subscription{UserID: userID, AuthorID: authorID}, nil
}

func (f *fakeStore) Unsubscribe(_ context.Context, _, _ int64) error { return nil }

func (f *fakeStore) IsSubscribed(_ context.Context, _, _ int64) (bool, error) { return false, nil }

func (f *fakeStore) SubscribedAuthors(_ context.Context, _ int64, limit int) ([]*models.SubscribedAuthor, error) {
	f.listedLimit = &limit
	return f.authors, nil
}

func TestSubscribeSurfacesSelfReference(t *testing.T) {
	st := &fakeStore{subscribeErr: store.ErrSelfSubscribe}
	svc := New(st)

	_, err := svc.Subscribe(context.Background(), 7, 7)
	require.ErrorIs(t, err, store.ErrSelfSubscribe)
}

func TestListNormalizesNonPositiveLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "negative means unbounded", limit: -5, want: 0},
		{name: "zero stays unbounded", limit: 0, want: 0},
		{name: "positive passes through", limit: 3, want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &fakeStore{}
			svc := New(st)

			_, err := svc.ListAuthorsFollowedBy(context.Background(), 7, tc.limit)
			require.NoError(t, err)
			require.NotNil(t, st.listedLimit)
			require.Equal(t, tc.want, *st.listedLimit)
		})
	}
}

func TestListPassesAuthorsThrough(t *testing.T) {
	st := &fakeStore{authors: []*models.SubscribedAuthor{
		{Author: models.User{ID: 9, Username: "chef"}, RecipeCount: 5},
	}}
	svc := New(st)

	authors, err := svc.ListAuthorsFollowedBy(context.Background(), 7, 2)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	require.Equal(t, int64(5), authors[0].RecipeCount)
}
