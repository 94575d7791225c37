// Package services – RoomService
//
// RoomService manages topic rooms and the posts inside them. Room names are
// unique; only a room's creator may delete it, and deleting a room removes
// its posts in the same transaction.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/repo"
)

// RoomView is the public shape of a room.
type RoomView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RoomService implements the room and post use-cases.
type RoomService struct {
	DB *gorm.DB
}

// ListRooms returns every room in storage order.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomView, error) {
	rooms, err := repo.ListRooms(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomView{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// CreateRoom creates a room named name owned by creatorUID.
func (s *RoomService) CreateRoom(ctx context.Context, name, creatorUID string) (*RoomView, error) {
	tr := otel.Tracer("services/RoomService")
	ctx, span := tr.Start(ctx, "CreateRoom",
		trace.WithAttributes(attribute.String("user.id", creatorUID)),
	)
	defer span.End()

	name = strings.TrimSpace(name)
	creatorUID = strings.TrimSpace(creatorUID)
	if name == "" || creatorUID == "" {
		return nil, ErrMissingField
	}
	r, err := repo.CreateRoom(ctx, s.DB, name, creatorUID)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrDuplicateRoomName
		}
		return nil, err
	}
	roomsCreated.Inc()
	return &RoomView{ID: r.ID, Name: r.Name}, nil
}

// ListPosts returns the posts of roomID newest first, each carrying the
// author's public fields and the room's creator.
func (s *RoomService) ListPosts(ctx context.Context, roomID uint) ([]repo.PostRow, error) {
	return repo.ListPostsByRoom(ctx, s.DB, roomID)
}

// PostsStats feeds the weak ETag of the post listing.
func (s *RoomService) PostsStats(ctx context.Context, roomID uint) (repo.ListStats, error) {
	return repo.PostsStats(ctx, s.DB, roomID)
}

// CreatePost adds a post by uid to roomID. The room must exist.
func (s *RoomService) CreatePost(ctx context.Context, uid, content string, roomID uint) (*domain.Post, error) {
	tr := otel.Tracer("services/RoomService")
	ctx, span := tr.Start(ctx, "CreatePost",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.Int64("room.id", int64(roomID)),
		),
	)
	defer span.End()

	if strings.TrimSpace(content) == "" || roomID == 0 {
		return nil, ErrMissingField
	}

	var post *domain.Post
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetRoom(ctx, tx, roomID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		p, err := repo.CreatePost(ctx, tx, roomID, uid, content)
		if err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	postsCreated.Inc()
	return post, nil
}

// DeleteRoom removes roomID and all of its posts when uid created it. A
// missing room is reported as ErrForbidden as well.
//
// The room delete is conditioned on creator_uid inside the transaction, so a
// concurrent delete cannot leave the posts gone but the room present.
func (s *RoomService) DeleteRoom(ctx context.Context, uid string, roomID uint) error {
	tr := otel.Tracer("services/RoomService")
	ctx, span := tr.Start(ctx, "DeleteRoom",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.Int64("room.id", int64(roomID)),
		),
	)
	defer span.End()

	var removedPosts int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := repo.GetRoom(ctx, tx, roomID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrForbidden
			}
			return err
		}
		if room.CreatorUID != uid {
			return ErrForbidden
		}
		if removedPosts, err = repo.DeletePostsByRoom(ctx, tx, roomID); err != nil {
			return err
		}
		n, err := repo.DeleteRoomByCreator(ctx, tx, roomID, uid)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrForbidden
		}
		return nil
	})
	if err != nil {
		return err
	}

	roomsDeleted.Inc()
	log.Ctx(ctx).Info().
		Uint("room_id", roomID).
		Int64("posts_removed", removedPosts).
		Msg("room deleted")
	return nil
}
