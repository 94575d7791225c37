// Package services – AccountService
//
// AccountService owns username registration. Registration is an upsert that
// touches only the username, so a user's icon, profile and ranking survive a
// rename.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/repo"
)

// AccountService registers and checks usernames.
type AccountService struct {
	DB *gorm.DB
}

// RegisterUsername creates the user row for uid or renames it.
func (s *AccountService) RegisterUsername(ctx context.Context, uid, username string) error {
	ctx, span := otel.Tracer("services/AccountService").Start(ctx, "RegisterUsername",
		trace.WithAttributes(attribute.String("user.id", uid)),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	if strings.TrimSpace(uid) == "" || username == "" {
		return ErrMissingField
	}
	return repo.UpsertUsername(ctx, s.DB, uid, username)
}

// NeedsUsername reports whether uid still has to pick a username: true when
// there is no user row or its username is blank.
func (s *AccountService) NeedsUsername(ctx context.Context, uid string) (bool, error) {
	if strings.TrimSpace(uid) == "" {
		return true, nil
	}
	u, err := repo.GetUser(ctx, s.DB, uid)
	if errors.Is(err, repo.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(u.Username) == "", nil
}
