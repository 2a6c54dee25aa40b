package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestSubscribeSelfReference(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	// The self check runs before any statement reaches the database.
	_, err := s.Subscribe(context.Background(), 7, 7)
	if !errors.Is(err, ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestSubscribeSuccess(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO subscriptions (user_id, author_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, author_id, created_at
	`)).
		WithArgs(int64(7), int64(9), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "author_id", "created_at"}).
			AddRow(int64(3), int64(7), int64(9), time.Now().UTC()))

	sub, err := s.Subscribe(context.Background(), 7, 9)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	if sub.UserID != 7 || sub.AuthorID != 9 {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestSubscribeDuplicate(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO subscriptions`)).
		WithArgs(int64(7), int64(9), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_author"})

	_, err := s.Subscribe(context.Background(), 7, 9)
	if !errors.Is(err, ErrSubscriptionExists) {
		t.Fatalf("expected ErrSubscriptionExists, got %v", err)
	}
}

func TestUnsubscribeNotFound(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM subscriptions`)).
		WithArgs(int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Unsubscribe(context.Background(), 7, 9)
	if !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestSubscribedAuthorsCountIgnoresTruncation(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.id, u.username, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY u.username ASC
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
			AddRow(int64(9), "chef", now))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, author_id, name, tags, pub_date, favorites_count
		FROM recipes
		WHERE author_id = $1
		ORDER BY pub_date DESC, id DESC
	`)).
		WithArgs(int64(9), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "name", "tags", "pub_date", "favorites_count"}).
			AddRow(int64(5), int64(9), "Borscht", []byte("{dinner,soup}"), now, int64(3)).
			AddRow(int64(4), int64(9), "Okroshka", []byte("{summer}"), now.Add(-time.Hour), int64(1)))

	mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT COUNT(*) FROM recipes WHERE author_id = $1
		`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	authors, err := s.SubscribedAuthors(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("SubscribedAuthors error: %v", err)
	}

	if len(authors) != 1 {
		t.Fatalf("expected 1 author, got %d", len(authors))
	}
	entry := authors[0]
	if entry.Author.Username != "chef" {
		t.Fatalf("unexpected author: %+v", entry.Author)
	}
	if len(entry.Recipes) != 2 {
		t.Fatalf("expected 2 recipes in truncated slice, got %d", len(entry.Recipes))
	}
	if entry.RecipeCount != 5 {
		t.Fatalf("expected total count 5 independent of truncation, got %d", entry.RecipeCount)
	}
	if entry.Recipes[0].Name != "Borscht" || len(entry.Recipes[0].Tags) != 2 {
		t.Fatalf("unexpected first recipe: %+v", entry.Recipes[0])
	}
}

func TestSubscribedAuthorsUnboundedOmitsLimit(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM subscriptions s`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
			AddRow(int64(9), "chef", time.Now().UTC()))

	// No LIMIT clause, so the query carries a single argument.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM recipes`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "name", "tags", "pub_date", "favorites_count"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM recipes`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	authors, err := s.SubscribedAuthors(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("SubscribedAuthors error: %v", err)
	}
	if len(authors) != 1 || authors[0].RecipeCount != 0 || len(authors[0].Recipes) != 0 {
		t.Fatalf("unexpected result: %+v", authors[0])
	}
}
