package usecase

import (
	"context"
	"fmt"

	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListUsersUseCase returns the contacts a user can start a conversation
// with: everyone except the requester, id and name only.
type ListUsersUseCase struct {
	Users repository.UserRepository
}

func NewListUsersUseCase(users repository.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{Users: users}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, requesterID int64) ([]chat.User, error) {
	users, err := uc.Users.ListOthers(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
