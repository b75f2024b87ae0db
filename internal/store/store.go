package store

import (
	"context"

	"github.com/me/unishop/pkg/model"
)

// Store is the local persistence layer for the session cache. Exactly two
// durable records exist: the session token and the serialized user profile.
// They are always written together and purged together, so a persisted token
// implies a persisted profile and vice versa.
type Store interface {
	// SaveSession writes token and user atomically, replacing any prior pair.
	SaveSession(ctx context.Context, token string, user *model.UserProfile) error
	// SaveToken replaces the persisted token, keeping the stored profile.
	// Fails with model.ErrNoSession when no pair is persisted.
	SaveToken(ctx context.Context, token string) error
	// SaveUser replaces the persisted profile, keeping the stored token.
	// Fails with model.ErrNoSession when no pair is persisted.
	SaveUser(ctx context.Context, user *model.UserProfile) error
	// LoadSession returns the persisted pair, or ("", nil, nil) when absent.
	LoadSession(ctx context.Context) (string, *model.UserProfile, error)
	// ClearSession removes both records atomically. Clearing an empty store is a no-op.
	ClearSession(ctx context.Context) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
