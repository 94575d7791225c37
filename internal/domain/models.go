// Package domain defines the persistence models for users, rooms, room posts
// and the matching board. These types are mapped with GORM and form the core
// data layer shared by the repository and service packages.
package domain

import "time"

// User is a community member keyed by the identity provider's uid.
//
// Fields:
//   - UID: provider-issued identifier, primary key.
//   - Username: display name; empty until the user registers one.
//   - IconURL: public URL of the uploaded profile icon.
//   - Profile: free-form self introduction.
//   - Point / Level: ranking inputs for the champion gallery.
type User struct {
	UID       string    `json:"uid"      gorm:"type:varchar(128);primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(255);not null;default:''"`
	IconURL   string    `json:"icon_url" gorm:"type:varchar(512);not null;default:''"`
	Profile   string    `json:"profile"  gorm:"type:text"`
	Point     int       `json:"point"    gorm:"not null;default:0;index:idx_users_rank,priority:2"`
	Level     int       `json:"level"    gorm:"not null;default:0;index:idx_users_rank,priority:1"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Room is a named topic space. Names are unique across the whole service.
type Room struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name"        gorm:"type:varchar(255);not null;uniqueIndex:ux_rooms_name"`
	CreatorUID string    `json:"creator_uid" gorm:"type:varchar(128);not null;index"`
	CreatedAt  time.Time `json:"-"`
}

// TableName returns the database table name for Room.
func (Room) TableName() string { return "rooms" }

// Post is a message inside a room. Likes and Hearts are reaction counters
// that start out NULL and are treated as zero when incremented.
type Post struct {
	ID        uint      `json:"id"      gorm:"primaryKey;autoIncrement"`
	RoomID    uint      `json:"room_id" gorm:"not null;index:idx_posts_room"`
	UID       string    `json:"uid"     gorm:"type:varchar(128);not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Likes     *int      `json:"likes"`
	Hearts    *int      `json:"hearts"`
	CreatedAt time.Time `json:"-"`

	// Room is the parent room. Posts are removed together with it.
	Room Room `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }

// MatchPost is an image entry on the matching board. Feature holds the
// canonical "#tag1#tag2#" form (or "" when untagged).
type MatchPost struct {
	ID        uint      `json:"id"       gorm:"primaryKey;autoIncrement"`
	ImgURL    string    `json:"img_url"  gorm:"type:varchar(512);not null"`
	Caption   string    `json:"caption"  gorm:"type:text"`
	XAccount  string    `json:"xAccount" gorm:"column:x_account;type:varchar(255)"`
	UID       string    `json:"uid"      gorm:"type:varchar(128);not null;index"`
	Feature   string    `json:"feature"  gorm:"type:varchar(1024);not null;default:''"`
	IdolName  string    `json:"idolName" gorm:"column:idol_name;type:varchar(255);not null;default:''"`
	Likes     int       `json:"likes"    gorm:"not null;default:0"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the database table name for MatchPost.
func (MatchPost) TableName() string { return "match_posts" }

// MatchPostLike is the ledger row that lets a user like a match post once.
// The composite primary key (post_id, user_uid) is the only gate against
// duplicate likes.
type MatchPostLike struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false"`
	UserUID   string    `gorm:"type:varchar(128);primaryKey"`
	CreatedAt time.Time

	Post MatchPost `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for MatchPostLike.
func (MatchPostLike) TableName() string { return "match_post_likes" }

// SchemaMigration records a schema version applied by repo.Migrate.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for SchemaMigration.
func (SchemaMigration) TableName() string { return "schema_migrations" }
