// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the matching
// board: match posts and the like ledger.
//
// Functions:
//
//   - ListMatchPosts(ctx, db, tag) -> []MatchRow, error
//     Newest first, optionally restricted to posts carrying "#tag#".
//
//   - CreateMatchLike(ctx, db, postID, uid) -> error
//     Inserts a ledger row; a duplicate surfaces as a unique violation.
//
//   - IncrementMatchLikes(ctx, db, postID) -> error
//     Bumps the denormalized counter. Call it in the same transaction as
//     CreateMatchLike.
//
// Bulk deletes remove ledger rows explicitly so they do not depend on the
// driver enforcing ON DELETE CASCADE.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// MatchRow is a match post joined with its author's username (nil when the
// author has no user row).
type MatchRow struct {
	ID       uint    `json:"id"`
	ImgURL   string  `json:"img_url"`
	Caption  string  `json:"caption"`
	XAccount string  `json:"xAccount"`
	IdolName string  `json:"idolName"`
	Likes    int     `json:"likes"`
	Username *string `json:"username"`
}

// likeEscaper escapes LIKE metacharacters; the queries declare ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListMatchPosts returns match posts newest first. A non-empty tag keeps only
// rows whose feature contains "#tag#".
func ListMatchPosts(ctx context.Context, db *gorm.DB, tag string) ([]MatchRow, error) {
	q := db.WithContext(ctx).
		Table("match_posts AS m").
		Select("m.id AS id, m.img_url AS img_url, m.caption AS caption, m.x_account AS x_account, " +
			"m.idol_name AS idol_name, COALESCE(m.likes, 0) AS likes, u.username AS username").
		Joins("LEFT JOIN users u ON u.uid = m.uid")
	if tag != "" {
		q = q.Where("m.feature LIKE ? ESCAPE '!'", "%#"+likeEscaper.Replace(tag)+"#%")
	}
	out := []MatchRow{}
	err := q.Order("m.id DESC").Scan(&out).Error
	return out, err
}

// ListMatchPostsByUID returns the caller's own posts newest first.
func ListMatchPostsByUID(ctx context.Context, db *gorm.DB, uid string) ([]domain.MatchPost, error) {
	out := []domain.MatchPost{}
	err := db.WithContext(ctx).Where("uid = ?", uid).Order("id DESC").Find(&out).Error
	return out, err
}

// CreateMatchPost inserts mp and fills its ID.
func CreateMatchPost(ctx context.Context, db *gorm.DB, mp *domain.MatchPost) error {
	if mp.CreatedAt.IsZero() {
		mp.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(mp).Error
}

// GetMatchPost fetches a match post by id, or ErrNotFound.
func GetMatchPost(ctx context.Context, db *gorm.DB, id uint) (*domain.MatchPost, error) {
	var mp domain.MatchPost
	if err := db.WithContext(ctx).First(&mp, id).Error; err != nil {
		return nil, err
	}
	return &mp, nil
}

// DeleteMatchPost removes post id only when uid authored it, together with
// its like rows. It reports how many posts went away.
func DeleteMatchPost(ctx context.Context, db *gorm.DB, id uint, uid string) (int64, error) {
	db = db.WithContext(ctx)
	owned := db.Model(&domain.MatchPost{}).Select("id").Where("id = ? AND uid = ?", id, uid)
	if err := db.Where("post_id IN (?)", owned).Delete(&domain.MatchPostLike{}).Error; err != nil {
		return 0, err
	}
	res := db.Where("id = ? AND uid = ?", id, uid).Delete(&domain.MatchPost{})
	return res.RowsAffected, res.Error
}

// DeleteMatchPostsByUID removes every post uid authored, with their likes.
func DeleteMatchPostsByUID(ctx context.Context, db *gorm.DB, uid string) (int64, error) {
	db = db.WithContext(ctx)
	owned := db.Model(&domain.MatchPost{}).Select("id").Where("uid = ?", uid)
	if err := db.Where("post_id IN (?)", owned).Delete(&domain.MatchPostLike{}).Error; err != nil {
		return 0, err
	}
	res := db.Where("uid = ?", uid).Delete(&domain.MatchPost{})
	return res.RowsAffected, res.Error
}

// DeleteAllMatchPosts empties the board and the like ledger.
func DeleteAllMatchPosts(ctx context.Context, db *gorm.DB) (int64, error) {
	all := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&domain.MatchPostLike{}).Error; err != nil {
		return 0, err
	}
	res := all.Delete(&domain.MatchPost{})
	return res.RowsAffected, res.Error
}

// CreateMatchLike records that uid liked postID.
func CreateMatchLike(ctx context.Context, db *gorm.DB, postID uint, uid string) error {
	like := &domain.MatchPostLike{PostID: postID, UserUID: uid, CreatedAt: time.Now().UTC()}
	return db.WithContext(ctx).Omit("Post").Create(like).Error
}

// IncrementMatchLikes adds one to the post's like counter.
func IncrementMatchLikes(ctx context.Context, db *gorm.DB, postID uint) error {
	return db.WithContext(ctx).
		Model(&domain.MatchPost{}).
		Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("COALESCE(likes, 0) + 1")).Error
}
