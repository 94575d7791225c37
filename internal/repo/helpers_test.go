package repo

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// newTestDB opens a private in-memory database. With migrate set, the full
// schema is applied.
func newTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if migrate {
		if _, err := Migrate(context.Background(), db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, u domain.User) {
	t.Helper()
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", u.UID, err)
	}
}

func seedRoom(t *testing.T, db *gorm.DB, name, creator string) *domain.Room {
	t.Helper()
	r, err := CreateRoom(context.Background(), db, name, creator)
	if err != nil {
		t.Fatalf("seed room %s: %v", name, err)
	}
	return r
}

func seedMatch(t *testing.T, db *gorm.DB, uid, feature string) *domain.MatchPost {
	t.Helper()
	mp := &domain.MatchPost{ImgURL: "/static/match_images/" + uuid.NewString() + ".png", UID: uid, Feature: feature}
	if err := CreateMatchPost(context.Background(), db, mp); err != nil {
		t.Fatalf("seed match post: %v", err)
	}
	return mp
}
