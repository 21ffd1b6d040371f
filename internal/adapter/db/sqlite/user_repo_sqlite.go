package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"signup-service/internal/domain/user"
	"signup-service/pkg/logger"
)

// UserRepoSQLite implements the Repository interface with GORM on an
// in-memory SQLite database.
type UserRepoSQLite struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoSQLite creates a new instance of UserRepoSQLite.
func NewUserRepoSQLite(db *gorm.DB, log *zap.Logger) *UserRepoSQLite {
	return &UserRepoSQLite{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"` // Assigned as row count + 1
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null"`
	Password string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Migrate creates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

// Create inserts a new user with ID set to the current row count plus one.
func (r *UserRepoSQLite) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	log := logger.WithContext(ctx, r.log)

	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserSchema{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		model = UserSchema{
			ID:       count + 1,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Debug("user created in db", zap.Int64("id", model.ID))
	return toDomain(model), nil
}

// List retrieves all users ordered by insertion.
func (r *UserRepoSQLite) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *toDomain(model)
	}

	return users, nil
}

func toDomain(model UserSchema) *user.User {
	return &user.User{
		ID:       model.ID,
		Name:     model.Name,
		Email:    model.Email,
		Password: model.Password,
	}
}
