package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ryunskeee/idolmatch/internal/domain"
)

func TestReactionService_React(t *testing.T) {
	db := newSvcDB(t)
	rooms := &RoomService{DB: db}
	s := &ReactionService{DB: db}
	ctx := context.Background()

	r, _ := rooms.CreateRoom(ctx, "general", "owner")
	p, _ := rooms.CreatePost(ctx, "u1", "x", r.ID)

	for i := 1; i <= 3; i++ {
		if err := s.React(ctx, p.ID, ReactionLike); err != nil {
			t.Fatalf("React like: %v", err)
		}
		var got domain.Post
		db.First(&got, p.ID)
		if got.Likes == nil || *got.Likes != i {
			t.Fatalf("after %d likes: %v", i, got.Likes)
		}
		if got.Hearts != nil {
			t.Fatalf("hearts touched by like: %v", *got.Hearts)
		}
	}
	if err := s.React(ctx, p.ID, ReactionHeart); err != nil {
		t.Fatalf("React heart: %v", err)
	}
}

func TestReactionService_Validation(t *testing.T) {
	s := &ReactionService{DB: newSvcDB(t)}
	ctx := context.Background()

	if err := s.React(ctx, 1, "love"); !errors.Is(err, ErrInvalidReaction) {
		t.Fatalf("expected ErrInvalidReaction, got %v", err)
	}
	if err := s.React(ctx, 0, ReactionLike); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for post 0, got %v", err)
	}
	if err := s.React(ctx, 1, ""); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank kind, got %v", err)
	}
	// Unknown post: silent success.
	if err := s.React(ctx, 12345, ReactionHeart); err != nil {
		t.Fatalf("missing post should succeed, got %v", err)
	}
}
