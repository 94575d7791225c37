package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// Reaction counter columns on posts.
const (
	ColumnLikes  = "likes"
	ColumnHearts = "hearts"
)

// PostRow is a room post joined with its author's public fields and the
// room's creator. Author fields are nil when the author has no user row.
type PostRow struct {
	ID         uint    `json:"id"`
	UID        string  `json:"uid"`
	Username   *string `json:"username"`
	IconURL    *string `json:"icon_url"`
	Content    string  `json:"content"`
	Likes      *int    `json:"likes"`
	Hearts     *int    `json:"hearts"`
	CreatorUID *string `json:"creator_uid"`
}

// ListPostsByRoom returns the posts of a room newest first.
func ListPostsByRoom(ctx context.Context, db *gorm.DB, roomID uint) ([]PostRow, error) {
	out := []PostRow{}
	err := db.WithContext(ctx).
		Table("posts AS p").
		Select("p.id AS id, p.uid AS uid, u.username AS username, u.icon_url AS icon_url, " +
			"p.content AS content, p.likes AS likes, p.hearts AS hearts, r.creator_uid AS creator_uid").
		Joins("LEFT JOIN users u ON u.uid = p.uid").
		Joins("LEFT JOIN rooms r ON r.id = p.room_id").
		Where("p.room_id = ?", roomID).
		Order("p.id DESC").
		Scan(&out).Error
	return out, err
}

// CreatePost inserts a post into roomID authored by uid.
func CreatePost(ctx context.Context, db *gorm.DB, roomID uint, uid, content string) (*domain.Post, error) {
	p := &domain.Post{RoomID: roomID, UID: uid, Content: content, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Omit("Room").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePostsByRoom removes every post in roomID.
func DeletePostsByRoom(ctx context.Context, db *gorm.DB, roomID uint) (int64, error) {
	res := db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&domain.Post{})
	return res.RowsAffected, res.Error
}

// IncrementReaction adds one to the given counter column, treating NULL as
// zero. It returns the number of rows touched (0 for an unknown post).
func IncrementReaction(ctx context.Context, db *gorm.DB, postID uint, column string) (int64, error) {
	if column != ColumnLikes && column != ColumnHearts {
		return 0, fmt.Errorf("unknown reaction column %q", column)
	}
	res := db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr("COALESCE("+column+", 0) + 1"))
	return res.RowsAffected, res.Error
}
