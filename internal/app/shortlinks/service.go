package shortlinks

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"foodgram/internal/models"
	"foodgram/internal/store"
)

const (
	// DefaultAlphabet restricts tokens to unambiguous alphanumerics.
	DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// DefaultLength gives 62^8 possible tokens, so a collision retry is
	// a once-in-a-blue-moon event rather than a loop.
	DefaultLength = 8
	// DefaultMaxAttempts caps the mint loop. Hitting the cap means the
	// configured token space is far too small, not bad luck.
	DefaultMaxAttempts = 32
)

// ErrTokenSpaceExhausted reports a mint loop that ran out of attempts.
// It indicates a misconfigured alphabet/length, and is not retried.
var ErrTokenSpaceExhausted = errors.New("short link token space exhausted")

// Store defines persistence operations required for short links.
type Store interface {
	CreateLink(ctx context.Context, recipeID int64, token string) (*models.ShortLink, error)
	ActiveLinkByRecipe(ctx context.Context, recipeID int64) (*models.ShortLink, error)
	ResolveLink(ctx context.Context, token string) (int64, error)
	DeactivateLink(ctx context.Context, token string) (int64, error)
	LinksByRecipe(ctx context.Context, recipeID int64) ([]*models.ShortLink, error)
}

// Cache is an optional issuance fast path mapping recipes to their
// active tokens. A nil Cache disables caching.
type Cache interface {
	TokenByRecipe(ctx context.Context, recipeID int64) (string, error)
	SetTokenByRecipe(ctx context.Context, recipeID int64, token string) error
	InvalidateRecipe(ctx context.Context, recipeID int64) error
}

// Config controls token minting.
type Config struct {
	Alphabet    string
	Length      int
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.Alphabet == "" {
		c.Alphabet = DefaultAlphabet
	}
	if c.Length <= 0 {
		c.Length = DefaultLength
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

// Service issues and resolves short links. Issuance reuses the recipe's
// existing active link rather than minting a new token per request, so
// tokens do not proliferate per recipe.
type Service interface {
	GetOrCreate(ctx context.Context, recipeID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Deactivate(ctx context.Context, token string) error
	History(ctx context.Context, recipeID int64) ([]*models.ShortLink, error)
}

type service struct {
	store  Store
	cache  Cache
	cfg    Config
	logger zerolog.Logger
}

// New constructs a short link Service. cache may be nil.
func New(st Store, cache Cache, cfg Config, logger zerolog.Logger) Service {
	return &service{store: st, cache: cache, cfg: cfg.withDefaults(), logger: logger}
}

// GetOrCreate returns the recipe's active short token, minting one on
// first request. Two concurrent first requests for the same recipe
// converge on a single token via the storage constraint.
func (s *service) GetOrCreate(ctx context.Context, recipeID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.cache != nil {
		token, err := s.cache.TokenByRecipe(ctx, recipeID)
		if err != nil {
			// Cache trouble is not fatal; the store remains authoritative.
			s.logger.Warn().Err(err).Int64("recipe_id", recipeID).Msg("short link cache read failed")
		} else if token != "" {
			return token, nil
		}
	}

	link, err := s.store.ActiveLinkByRecipe(ctx, recipeID)
	if err == nil {
		s.cacheToken(ctx, recipeID, link.Token)
		return link.Token, nil
	}
	if !errors.Is(err, store.ErrLinkNotFound) {
		return "", err
	}

	token, err := s.mint(ctx, recipeID)
	if err != nil {
		return "", err
	}
	s.cacheToken(ctx, recipeID, token)
	return token, nil
}

// mint draws tokens until one inserts cleanly, bounded by MaxAttempts.
func (s *service) mint(ctx context.Context, recipeID int64) (string, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		token, err := gonanoid.Generate(s.cfg.Alphabet, s.cfg.Length)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}

		link, err := s.store.CreateLink(ctx, recipeID, token)
		if err == nil {
			s.logger.Debug().
				Int64("recipe_id", recipeID).
				Str("token", link.Token).
				Int("attempt", attempt).
				Msg("short link minted")
			return link.Token, nil
		}
		if errors.Is(err, store.ErrTokenTaken) {
			s.logger.Warn().
				Int64("recipe_id", recipeID).
				Int("attempt", attempt).
				Msg("short link token collision, redrawing")
			continue
		}
		if errors.Is(err, store.ErrLinkExists) {
			// A concurrent request minted the recipe's link first.
			existing, err := s.store.ActiveLinkByRecipe(ctx, recipeID)
			if err != nil {
				return "", err
			}
			return existing.Token, nil
		}
		return "", err
	}

	return "", fmt.Errorf("%w after %d attempts", ErrTokenSpaceExhausted, s.cfg.MaxAttempts)
}

// Resolve maps a token back to its recipe and counts the hit. Inactive
// links report store.ErrLinkInactive without incrementing; unknown
// tokens report store.ErrLinkNotFound.
func (s *service) Resolve(ctx context.Context, token string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.ResolveLink(ctx, token)
}

// Deactivate revokes a link and drops its issuance cache entry.
func (s *service) Deactivate(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipeID, err := s.store.DeactivateLink(ctx, token)
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateRecipe(ctx, recipeID); err != nil {
			s.logger.Warn().Err(err).Int64("recipe_id", recipeID).Msg("short link cache invalidation failed")
		}
	}
	return nil
}

// History lists every link ever issued for the recipe, newest first.
func (s *service) History(ctx context.Context, recipeID int64) ([]*models.ShortLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.LinksByRecipe(ctx, recipeID)
}

func (s *service) cacheToken(ctx context.Context, recipeID int64, token string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTokenByRecipe(ctx, recipeID, token); err != nil {
		s.logger.Warn().Err(err).Int64("recipe_id", recipeID).Msg("short link cache write failed")
	}
}
