package memory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"signup-service/internal/domain/user"
	"signup-service/pkg/logger"
)

// UserRepoMemory keeps users in a process-local slice.
// Everything is lost when the process exits.
type UserRepoMemory struct {
	mu    sync.Mutex
	users []user.User
	log   *zap.Logger
}

// NewUserRepoMemory creates an empty in-memory repository.
func NewUserRepoMemory(log *zap.Logger) *UserRepoMemory {
	return &UserRepoMemory{log: log}
}

// Create appends a copy of u with ID set to the record count plus one.
func (r *UserRepoMemory) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	stored := *u
	stored.ID = int64(len(r.users)) + 1
	r.users = append(r.users, stored)
	r.mu.Unlock()

	logger.WithContext(ctx, r.log).Debug("user stored in memory", zap.Int64("id", stored.ID))
	return &stored, nil
}

// List returns a snapshot of all users in insertion order.
func (r *UserRepoMemory) List(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]user.User, len(r.users))
	copy(users, r.users)
	return users, nil
}
