package user

// SignUpRequest represents the request payload for registering a user.
// Only presence is checked; values are stored exactly as received.
type SignUpRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// SignUpResponse represents the outcome of a stored sign-up.
type SignUpResponse struct {
	User User
	// Notified is false when the record was stored but the admin mail failed.
	Notified bool
}

// ListUsersResponse represents every stored user in insertion order.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}
