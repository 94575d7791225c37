// Package services – ProfileService
//
// ProfileService reads and edits the public profile of a user and stores
// profile icons through the configured image store. Edits are update-only:
// a user row is created solely by username registration.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

const iconPrefix = "icons/"

// Profile is the public view of a user.
type Profile struct {
	IconURL  string `json:"icon_url"`
	Username string `json:"username"`
	Point    int    `json:"point"`
	Profile  string `json:"profile"`
}

// ProfileService implements profile reads, edits and icon uploads.
type ProfileService struct {
	DB    *gorm.DB
	Store storage.Store
}

// GetProfile returns the profile of uid or ErrUserNotFound.
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &Profile{IconURL: u.IconURL, Username: u.Username, Point: u.Point, Profile: u.Profile}, nil
}

// SetProfile replaces the profile text. A present username is written in
// the same statement, trimmed, even when that leaves it blank; nil leaves
// the username alone.
func (s *ProfileService) SetProfile(ctx context.Context, uid, profile string, username *string) error {
	if username != nil {
		trimmed := strings.TrimSpace(*username)
		username = &trimmed
	}
	return repo.UpdateProfile(ctx, s.DB, uid, profile, username)
}

// iconKey places each user's icons in a directory named by the SHA-256 of
// the uid, so no two uids can share a key however their names sanitize.
func iconKey(uid, filename string) string {
	sum := sha256.Sum256([]byte(uid))
	return iconPrefix + hex.EncodeToString(sum[:]) + "/" + storage.ImageName(filename)
}

// UploadIcon stores an icon for uid and records its URL on the user row.
func (s *ProfileService) UploadIcon(ctx context.Context, uid, filename string, r io.Reader) (string, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "UploadIcon",
		trace.WithAttributes(attribute.String("user.id", uid)),
	)
	defer span.End()

	if r == nil || strings.TrimSpace(filename) == "" {
		return "", ErrMissingFile
	}
	if !storage.IsAllowedImage(filename) {
		return "", ErrDisallowedFileType
	}

	url, err := s.Store.Save(ctx, iconKey(uid, filename), r)
	if err != nil {
		return "", err
	}
	if err := repo.SetIconURL(ctx, s.DB, uid, url); err != nil {
		return "", err
	}
	uploads.WithLabelValues("icon").Inc()
	return url, nil
}
