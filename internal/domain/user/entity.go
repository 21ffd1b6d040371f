package user

// User represents a signed-up user record.
// Records live only in process memory and are never updated or deleted.
type User struct {
	ID       int64  `json:"id"`       // ID is the record count at insertion time plus one
	Name     string `json:"name"`     // Name as submitted
	Email    string `json:"email"`    // Email as submitted
	Password string `json:"password"` // Password as submitted, not hashed
}
