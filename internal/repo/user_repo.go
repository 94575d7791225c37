// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: persistence and query composition only, no business rules.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Update helpers are no-ops for unknown uids; users are created only by
//     UpsertUsername.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// UpsertUsername creates the user row for uid or, when it already exists,
// replaces only its username. Icon, profile and ranking survive.
func UpsertUsername(ctx context.Context, db *gorm.DB, uid, username string) error {
	now := time.Now().UTC()
	u := &domain.User{UID: uid, Username: username, CreatedAt: now, UpdatedAt: now}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}).
		Create(u).Error
}

// GetUser fetches a single user by uid, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, uid string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile sets the profile text and, when username is non-nil, the
// username in the same statement.
func UpdateProfile(ctx context.Context, db *gorm.DB, uid, profile string, username *string) error {
	fields := map[string]any{"profile": profile}
	if username != nil {
		fields["username"] = *username
	}
	return db.WithContext(ctx).
		Model(&domain.User{}).
		Where("uid = ?", uid).
		Updates(fields).Error
}

// SetIconURL stores the public icon reference on the user row.
func SetIconURL(ctx context.Context, db *gorm.DB, uid, url string) error {
	return db.WithContext(ctx).
		Model(&domain.User{}).
		Where("uid = ?", uid).
		Update("icon_url", url).Error
}

// TopRankedUser returns the user with the highest level, then point. Ties
// are broken by uid so the answer is deterministic. ErrNotFound when the
// users table is empty.
func TopRankedUser(ctx context.Context, db *gorm.DB) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Order("level DESC").
		Order("point DESC").
		Order("uid ASC").
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
