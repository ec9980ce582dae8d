package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/uiregistry/pkg/observability"
)

// ErrNotFound is returned by Load when no artifact has been saved yet.
var ErrNotFound = errors.New("artifact not found")

// Store loads and saves the registry artifact.
type Store interface {
	// Load returns the current artifact or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the artifact with data.
	Save(ctx context.Context, data []byte) error

	// Location describes where the artifact lives, for logs and output.
	Location() string

	// Close releases any connection held by the store.
	Close() error
}

// Writer is the subset of Store the builder needs.
type Writer interface {
	Save(ctx context.Context, data []byte) error
	Location() string
}

// Open returns the store addressed by location. Paths without a recognized
// scheme are treated as file paths.
func Open(ctx context.Context, location string) (Store, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("artifact location cannot be empty")
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisStore(ctx, location)
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return NewMongoStore(ctx, location)
	case strings.HasPrefix(location, "file://"):
		return NewFileStore(strings.TrimPrefix(location, "file://"))
	case strings.Contains(location, "://"):
		scheme, _, _ := strings.Cut(location, "://")
		return nil, fmt.Errorf("unsupported artifact scheme %q", scheme)
	default:
		return NewFileStore(location)
	}
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// instrumented reports loads and saves to the registered store hooks.
type instrumented struct {
	Store
	backend string
}

func withHooks(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Load(ctx context.Context) ([]byte, error) {
	data, err := s.Store.Load(ctx)
	observability.Store().OnLoad(ctx, s.backend, len(data), err)
	return data, err
}

func (s *instrumented) Save(ctx context.Context, data []byte) error {
	err := s.Store.Save(ctx, data)
	observability.Store().OnSave(ctx, s.backend, len(data), err)
	return err
}
