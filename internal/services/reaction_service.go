package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/repo"
)

// Reaction kinds accepted by ReactionService.React.
const (
	ReactionLike  = "like"
	ReactionHeart = "heart"
)

// ReactionService bumps the anonymous like/heart counters on room posts.
// There is no per-user ledger: every call counts.
type ReactionService struct {
	DB *gorm.DB
}

// React increments the counter named by kind on postID. Reacting to a post
// that does not exist succeeds without effect.
func (s *ReactionService) React(ctx context.Context, postID uint, kind string) error {
	kind = strings.TrimSpace(kind)
	if postID == 0 || kind == "" {
		return ErrMissingField
	}
	var column string
	switch kind {
	case ReactionLike:
		column = repo.ColumnLikes
	case ReactionHeart:
		column = repo.ColumnHearts
	default:
		return ErrInvalidReaction
	}
	if _, err := repo.IncrementReaction(ctx, s.DB, postID, column); err != nil {
		return err
	}
	reactions.WithLabelValues(kind).Inc()
	return nil
}
