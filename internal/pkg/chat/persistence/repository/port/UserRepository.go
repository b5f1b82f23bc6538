package repository

import (
	"context"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
)

// UserRepository exposes the sanitized read side of the account store.
// The chat core never writes users; the identity provider owns them.
type UserRepository interface {
	// FindByID returns nil, nil when no such user exists.
	FindByID(ctx context.Context, id int64) (*chat.User, error)

	// ListOthers returns every user except excludeID, ordered by id.
	ListOthers(ctx context.Context, excludeID int64) ([]chat.User, error)
}
