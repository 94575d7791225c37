package repo

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

// migration is one numbered schema step. Steps run in version order and each
// one is recorded in schema_migrations so it is applied at most once.
type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

var migrations = []migration{
	{1, "create users rooms posts", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&domain.User{}, &domain.Room{}, &domain.Post{})
	}},
	{2, "create match board", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&domain.MatchPost{}, &domain.MatchPostLike{})
	}},
	{3, "create idempotency", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&domain.Idempotency{})
	}},
}

// MigrationStatus describes one known schema step.
type MigrationStatus struct {
	Version   int
	Name      string
	AppliedAt *time.Time
}

// Migrate applies every pending migration and returns how many ran.
func Migrate(ctx context.Context, db *gorm.DB) (int, error) {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&domain.SchemaMigration{}); err != nil {
		return 0, err
	}
	done, err := appliedVersions(db)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range sortedMigrations() {
		if _, ok := done[m.version]; ok {
			continue
		}
		m := m
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&domain.SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// Migrations lists every known migration and when it was applied (nil when
// still pending).
func Migrations(ctx context.Context, db *gorm.DB) ([]MigrationStatus, error) {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&domain.SchemaMigration{}); err != nil {
		return nil, err
	}
	var rows []domain.SchemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	at := make(map[int]time.Time, len(rows))
	for _, r := range rows {
		at[r.Version] = r.AppliedAt
	}

	out := make([]MigrationStatus, 0, len(migrations))
	for _, m := range sortedMigrations() {
		st := MigrationStatus{Version: m.version, Name: m.name}
		if ts, ok := at[m.version]; ok {
			ts := ts
			st.AppliedAt = &ts
		}
		out = append(out, st)
	}
	return out, nil
}

func appliedVersions(db *gorm.DB) (map[int]struct{}, error) {
	var versions []int
	if err := db.Model(&domain.SchemaMigration{}).Pluck("version", &versions).Error; err != nil {
		return nil, err
	}
	out := make(map[int]struct{}, len(versions))
	for _, v := range versions {
		out[v] = struct{}{}
	}
	return out, nil
}

func sortedMigrations() []migration {
	out := append([]migration(nil), migrations...)
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out
}
