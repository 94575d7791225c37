// Package storage persists uploaded images and maps object keys to public
// URLs. Two backends exist: a local directory served by the HTTP router and
// an S3 (or S3-compatible) bucket.
//
// Keys are slash-separated and relative, e.g. "match_images/3f9c_me.png". Saving to
// an existing key replaces the object.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ryunskeee/idolmatch/internal/config"
)

// Store is the image store used by the services.
type Store interface {
	// Save writes r under key and returns the object's public URL.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	// List returns the public URLs of the objects directly under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// URL maps key to its public URL without touching the backend.
	URL(key string) string
}

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.PublicPrefix)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
