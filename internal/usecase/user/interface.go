package user

import "context"

// UserUsecase defines the interface for sign-up business logic operations.
type UserUsecase interface {
	SignUp(ctx context.Context, in SignUpRequest) (*SignUpResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	SendTestEmail(ctx context.Context) error
}
