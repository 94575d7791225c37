package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/repo"
)

// Idempotency scopes. They match the last segment of the route they guard.
const (
	ScopePosts     = "posts"
	ScopeMatchPost = "match_post"
)

// IdempotencyService remembers which Idempotency-Key values already led to
// a successful create, per user and scope, for TTL.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// Replayed reports whether key was already used successfully by userID in
// scope. A blank key is never a replay.
func (s *IdempotencyService) Replayed(ctx context.Context, userID, scope, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	_, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remember records a successful create. A concurrent duplicate is not an
// error: the other request already recorded the same outcome.
func (s *IdempotencyService) Remember(ctx context.Context, userID, scope, key, resourceID string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, resourceID, http.StatusOK, ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// Lookup adapts Replayed to the middleware's lookup signature.
func (s *IdempotencyService) Lookup(ctx context.Context, userID, scope, key string, _ time.Time) (bool, error) {
	return s.Replayed(ctx, userID, scope, key)
}

// PurgeExpired drops keys whose TTL has elapsed.
func (s *IdempotencyService) PurgeExpired(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, time.Now().UTC())
}

// RunJanitor calls PurgeExpired every interval until ctx is done.
func (s *IdempotencyService) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Hour
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				log.Ctx(ctx).Info().Int64("purged", n).Msg("idempotency keys expired")
			}
		}
	}
}
