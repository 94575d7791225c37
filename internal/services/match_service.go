// Package services – MatchService
//
// MatchService runs the matching board: image posts tagged with hashtags
// that others browse, filter by tag and like.
//
// Tags are stored in the canonical "#a#b#" form (see domain.CanonicalFeature)
// and filtering looks for the delimited "#tag#" so "idol" never matches
// "#idol2#". Likes go through a per-user ledger, making each like count once.
//
// Deleting every post on the board is reserved for admin uids.
package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

const matchImagePrefix = "match_images/"

// CreateMatchPostInput carries the fields of a new match post.
type CreateMatchPostInput struct {
	Caption  string
	XAccount string
	Feature  string
	IdolName string
	Filename string
	Image    io.Reader
}

// OwnMatchPost is a match post as shown to its author.
type OwnMatchPost struct {
	ID       uint   `json:"id"`
	ImgURL   string `json:"img_url"`
	Caption  string `json:"caption"`
	XAccount string `json:"xAccount"`
	Feature  string `json:"feature"`
	IdolName string `json:"idolName"`
	Likes    int    `json:"likes"`
}

// MatchService implements the matching board.
type MatchService struct {
	DB    *gorm.DB
	Store storage.Store
	// IsAdmin decides who may wipe the board. Nil means nobody.
	IsAdmin func(uid string) bool
}

// List returns match posts newest first. A filter that normalizes to
// nothing returns every post.
func (s *MatchService) List(ctx context.Context, filter string) ([]repo.MatchRow, error) {
	return repo.ListMatchPosts(ctx, s.DB, domain.FilterTag(filter))
}

// Stats feeds the weak ETag of the board listing.
func (s *MatchService) Stats(ctx context.Context) (repo.ListStats, error) {
	return repo.MatchPostsStats(ctx, s.DB)
}

// ListMine returns the posts authored by uid, newest first.
func (s *MatchService) ListMine(ctx context.Context, uid string) ([]OwnMatchPost, error) {
	rows, err := repo.ListMatchPostsByUID(ctx, s.DB, uid)
	if err != nil {
		return nil, err
	}
	out := make([]OwnMatchPost, 0, len(rows))
	for _, m := range rows {
		out = append(out, OwnMatchPost{
			ID:       m.ID,
			ImgURL:   m.ImgURL,
			Caption:  m.Caption,
			XAccount: m.XAccount,
			Feature:  m.Feature,
			IdolName: m.IdolName,
			Likes:    m.Likes,
		})
	}
	return out, nil
}

// Create stores the image and inserts the post.
func (s *MatchService) Create(ctx context.Context, uid string, in CreateMatchPostInput) (*domain.MatchPost, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", uid)),
	)
	defer span.End()

	if in.Image == nil || strings.TrimSpace(in.Filename) == "" {
		return nil, ErrMissingFile
	}
	if !storage.IsAllowedImage(in.Filename) {
		return nil, ErrDisallowedFileType
	}

	key := matchImagePrefix + uuid.NewString() + "_" + storage.ImageName(in.Filename)
	url, err := s.Store.Save(ctx, key, in.Image)
	if err != nil {
		return nil, err
	}
	uploads.WithLabelValues("match").Inc()

	mp := &domain.MatchPost{
		ImgURL:   url,
		Caption:  in.Caption,
		XAccount: in.XAccount,
		UID:      uid,
		Feature:  domain.CanonicalFeature(in.Feature),
		IdolName: strings.TrimSpace(in.IdolName),
	}
	if err := repo.CreateMatchPost(ctx, s.DB, mp); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("match_post.id", int64(mp.ID)))
	return mp, nil
}

// DeleteOwn removes postID when uid authored it. Anything else is a no-op.
func (s *MatchService) DeleteOwn(ctx context.Context, uid string, postID uint) error {
	if postID == 0 {
		return ErrMissingField
	}
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = repo.DeleteMatchPost(ctx, tx, postID, uid)
		return err
	})
	if err != nil {
		return err
	}
	matchPostsDeleted.WithLabelValues("own").Add(float64(n))
	return nil
}

// DeleteAllOwn removes every post authored by uid and reports how many.
func (s *MatchService) DeleteAllOwn(ctx context.Context, uid string) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = repo.DeleteMatchPostsByUID(ctx, tx, uid)
		return err
	})
	if err != nil {
		return 0, err
	}
	matchPostsDeleted.WithLabelValues("all_own").Add(float64(n))
	log.Ctx(ctx).Info().Int64("removed", n).Msg("match posts of user deleted")
	return n, nil
}

// DeleteAll wipes the board. Only admins may do this.
func (s *MatchService) DeleteAll(ctx context.Context, uid string) (int64, error) {
	if s.IsAdmin == nil || !s.IsAdmin(uid) {
		return 0, ErrForbidden
	}
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = repo.DeleteAllMatchPosts(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	matchPostsDeleted.WithLabelValues("all").Add(float64(n))
	log.Ctx(ctx).Warn().Str("admin_uid", uid).Int64("removed", n).Msg("matching board wiped")
	return n, nil
}

// Like records that uid likes postID and bumps its counter, atomically.
func (s *MatchService) Like(ctx context.Context, uid string, postID uint) error {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "Like",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.Int64("match_post.id", int64(postID)),
		),
	)
	defer span.End()

	if postID == 0 {
		return ErrMissingField
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetMatchPost(ctx, tx, postID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMatchPostNotFound
			}
			return err
		}
		if err := repo.CreateMatchLike(ctx, tx, postID, uid); err != nil {
			if repo.IsDuplicate(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		return repo.IncrementMatchLikes(ctx, tx, postID)
	})
	if err != nil {
		return err
	}
	matchLikes.Inc()
	return nil
}
