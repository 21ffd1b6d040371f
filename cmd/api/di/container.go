package di

import (
	"errors"
	"fmt"

	"signup-service/cmd/api/infrastructure"
	"signup-service/internal/adapter/db/memory"
	"signup-service/internal/adapter/db/sqlite"
	ginhandler "signup-service/internal/adapter/gin/handler"
	"signup-service/internal/adapter/notify"
	"signup-service/internal/config"
	"signup-service/internal/usecase/user"
	"signup-service/pkg/mail"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *gorm.DB
	Mailer     mail.Sender
	UserUC     *user.Usecase
	GinHandler *ginhandler.SignUpHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	// Initialize repository
	var repo user.Repository
	switch cfg.App.StoreDriver {
	case config.StoreSQLite:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		repo = sqlite.NewUserRepoSQLite(db, l)
	default:
		repo = memory.NewUserRepoMemory(l)
	}
	l.Info("user store ready", zap.String("driver", cfg.App.StoreDriver))

	// Initialize mail delivery
	c.Mailer = infrastructure.NewMailSender(cfg, l)
	notifier := notify.NewAdminNotifier(c.Mailer, cfg.Mail.AdminEmail, cfg.Logger.ServiceName, l)

	// Initialize use case
	c.UserUC = user.New(repo, notifier, l)

	// Initialize Gin handler
	c.GinHandler = ginhandler.NewSignUpHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
