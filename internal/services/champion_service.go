// Package services – ChampionService
//
// The champion is the single top-ranked user (level, then point, then uid).
// Only the champion may add images to the shared champion gallery; anyone
// may list it. Gallery images are stored under their sanitized file name,
// so uploading the same name again replaces the earlier image.
package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

const championPrefix = "champion_images"

// ChampionService gates and lists the champion gallery.
type ChampionService struct {
	DB    *gorm.DB
	Store storage.Store
}

// IsChampion reports whether uid is the current top-ranked user. An empty
// users table has no champion.
func (s *ChampionService) IsChampion(ctx context.Context, uid string) (bool, error) {
	top, err := repo.TopRankedUser(ctx, s.DB)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return top.UID == uid, nil
}

// Upload stores an image in the gallery on behalf of uid. The ranking check
// happens before the file is looked at.
func (s *ChampionService) Upload(ctx context.Context, uid, filename string, r io.Reader) (string, error) {
	tr := otel.Tracer("services/ChampionService")
	ctx, span := tr.Start(ctx, "Upload",
		trace.WithAttributes(attribute.String("user.id", uid)),
	)
	defer span.End()

	ok, err := s.IsChampion(ctx, uid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrForbidden
	}
	if r == nil || strings.TrimSpace(filename) == "" {
		return "", ErrMissingFile
	}
	if !storage.IsAllowedImage(filename) {
		return "", ErrDisallowedFileType
	}

	url, err := s.Store.Save(ctx, championPrefix+"/"+storage.ImageName(filename), r)
	if err != nil {
		return "", err
	}
	uploads.WithLabelValues("champion").Inc()
	log.Ctx(ctx).Info().Str("url", url).Msg("champion image uploaded")
	return url, nil
}

// List returns the URLs of gallery images with an allowed extension. The
// order is whatever the store yields.
func (s *ChampionService) List(ctx context.Context) ([]string, error) {
	all, err := s.Store.List(ctx, championPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, u := range all {
		if storage.IsAllowedImage(u) {
			out = append(out, u)
		}
	}
	return out, nil
}
