package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

func TestRoomService_CreateRoom(t *testing.T) {
	s := &RoomService{DB: newSvcDB(t)}
	ctx := context.Background()

	r, err := s.CreateRoom(ctx, " general ", "u1")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if r.ID == 0 || r.Name != "general" {
		t.Fatalf("unexpected room: %+v", r)
	}

	if _, err := s.CreateRoom(ctx, "general", "u2"); !errors.Is(err, ErrDuplicateRoomName) {
		t.Fatalf("expected ErrDuplicateRoomName, got %v", err)
	}
	if _, err := s.CreateRoom(ctx, "  ", "u2"); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank name, got %v", err)
	}
	if _, err := s.CreateRoom(ctx, "x", ""); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank creator, got %v", err)
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil || len(rooms) != 1 || rooms[0].Name != "general" {
		t.Fatalf("rooms=%+v err=%v", rooms, err)
	}

	var stored domain.Room
	s.DB.First(&stored, r.ID)
	if stored.CreatorUID != "u1" {
		t.Fatalf("duplicate attempt changed the first room: %+v", stored)
	}
}

func TestRoomService_CreatePost(t *testing.T) {
	s := &RoomService{DB: newSvcDB(t)}
	ctx := context.Background()
	r, _ := s.CreateRoom(ctx, "general", "owner")

	if _, err := s.CreatePost(ctx, "u1", "hello", 999); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := s.CreatePost(ctx, "u1", "  ", r.ID); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if _, err := s.CreatePost(ctx, "u1", "x", 0); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for room 0, got %v", err)
	}

	p, err := s.CreatePost(ctx, "u1", "hello", r.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	posts, err := s.ListPosts(ctx, r.ID)
	if err != nil || len(posts) != 1 || posts[0].ID != p.ID || posts[0].Content != "hello" {
		t.Fatalf("posts=%+v err=%v", posts, err)
	}
	if posts[0].CreatorUID == nil || *posts[0].CreatorUID != "owner" {
		t.Fatalf("creator_uid not carried: %+v", posts[0])
	}
}

func TestRoomService_DeleteRoom(t *testing.T) {
	s := &RoomService{DB: newSvcDB(t)}
	ctx := context.Background()
	r, _ := s.CreateRoom(ctx, "general", "owner")
	for i := 0; i < 3; i++ {
		if _, err := s.CreatePost(ctx, "u1", "x", r.ID); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	if err := s.DeleteRoom(ctx, "intruder", r.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-creator: expected ErrForbidden, got %v", err)
	}
	posts, _ := s.ListPosts(ctx, r.ID)
	if len(posts) != 3 {
		t.Fatalf("forbidden delete must not remove posts, left %d", len(posts))
	}

	if err := s.DeleteRoom(ctx, "owner", 999); !errors.Is(err, ErrForbidden) {
		t.Fatalf("missing room: expected ErrForbidden, got %v", err)
	}

	if err := s.DeleteRoom(ctx, "owner", r.ID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	posts, _ = s.ListPosts(ctx, r.ID)
	if len(posts) != 0 {
		t.Fatalf("posts remain after room delete: %d", len(posts))
	}
	rooms, _ := s.ListRooms(ctx)
	if len(rooms) != 0 {
		t.Fatalf("room remains: %+v", rooms)
	}
}

func TestRoomService_PostsStats(t *testing.T) {
	s := &RoomService{DB: newSvcDB(t)}
	ctx := context.Background()
	r, _ := s.CreateRoom(ctx, "general", "owner")
	before, _ := s.PostsStats(ctx, r.ID)
	_, _ = s.CreatePost(ctx, "u1", "x", r.ID)
	after, err := s.PostsStats(ctx, r.ID)
	if err != nil {
		t.Fatalf("PostsStats: %v", err)
	}
	if after == before {
		t.Fatalf("stats did not change after insert")
	}
}
