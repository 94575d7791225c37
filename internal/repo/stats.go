// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (weak ETags) on the list endpoints.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// ListStats summarizes a listing well enough to notice any change to it:
// inserts move MaxID, deletes move Count, reactions move Counter and
// username or icon edits move UsersUpdated.
type ListStats struct {
	Count        int64
	MaxID        uint
	Counter      int64
	UsersUpdated time.Time
}

// PostsStats returns ListStats for the posts of one room.
func PostsStats(ctx context.Context, db *gorm.DB, roomID uint) (ListStats, error) {
	var st ListStats
	err := db.WithContext(ctx).
		Model(&domain.Post{}).
		Select("COUNT(*) AS count, COALESCE(MAX(id), 0) AS max_id, "+
			"COALESCE(SUM(COALESCE(likes, 0) + COALESCE(hearts, 0)), 0) AS counter").
		Where("room_id = ?", roomID).
		Scan(&st).Error
	if err != nil {
		return ListStats{}, err
	}
	st.UsersUpdated, err = usersUpdated(ctx, db)
	return st, err
}

// MatchPostsStats returns ListStats for the whole matching board.
func MatchPostsStats(ctx context.Context, db *gorm.DB) (ListStats, error) {
	var st ListStats
	err := db.WithContext(ctx).
		Model(&domain.MatchPost{}).
		Select("COUNT(*) AS count, COALESCE(MAX(id), 0) AS max_id, COALESCE(SUM(likes), 0) AS counter").
		Scan(&st).Error
	if err != nil {
		return ListStats{}, err
	}
	st.UsersUpdated, err = usersUpdated(ctx, db)
	return st, err
}

// usersUpdated returns the latest users.updated_at (zero when empty).
func usersUpdated(ctx context.Context, db *gorm.DB) (time.Time, error) {
	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Select("updated_at").
		Order("updated_at DESC").
		Limit(1).
		Scan(&row).Error
	return row.UpdatedAt, err
}
