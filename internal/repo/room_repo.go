package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// ListRooms returns every room in insertion order.
func ListRooms(ctx context.Context, db *gorm.DB) ([]domain.Room, error) {
	out := []domain.Room{}
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// CreateRoom inserts a room. A duplicate name surfaces as the raw driver
// error; callers translate it with IsDuplicate.
func CreateRoom(ctx context.Context, db *gorm.DB, name, creatorUID string) (*domain.Room, error) {
	r := &domain.Room{Name: name, CreatorUID: creatorUID, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRoom fetches a room by id, or ErrNotFound.
func GetRoom(ctx context.Context, db *gorm.DB, id uint) (*domain.Room, error) {
	var r domain.Room
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRoomByCreator removes the room only when creatorUID created it and
// reports how many rows went away.
func DeleteRoomByCreator(ctx context.Context, db *gorm.DB, id uint, creatorUID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND creator_uid = ?", id, creatorUID).
		Delete(&domain.Room{})
	return res.RowsAffected, res.Error
}
