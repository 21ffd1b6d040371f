package user

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "signup-service/internal/domain/user"
	pkgerrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"
	"signup-service/pkg/metrics"
)

// Repository defines the interface for user storage.
// Implementations assign IDs as the current record count plus one.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Store a user and assign its ID
	List(ctx context.Context) ([]domain.User, error)                  // All users in insertion order
}

// Notifier delivers mails to the administrator.
type Notifier interface {
	NotifySignUp(ctx context.Context, u *domain.User) error
	SendTestEmail(ctx context.Context) error
}

// Usecase implements the sign-up flow on top of a Repository and a Notifier.
type Usecase struct {
	repo     Repository
	notifier Notifier
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of Usecase.
func New(r Repository, n Notifier, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, notifier: n, log: log, validate: validator.New()}
}

// missingFields converts validator.ValidationErrors into a ValidationError naming the missing fields.
func missingFields(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return pkgerrors.NewValidationError(fields, pkgerrors.ErrMissingFields.Message)
}

// SignUp stores the user and notifies the administrator.
// A failed notification does not undo the stored record; it is reported
// through SignUpResponse.Notified.
func (uc *Usecase) SignUp(ctx context.Context, in SignUpRequest) (*SignUpResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("signing up user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("sign-up rejected", zap.Error(err))
		return nil, missingFields(err)
	}

	u, err := uc.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		log.Error("failed to store user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to store user", err)
	}
	metrics.UsersCreated.Inc()

	resp := &SignUpResponse{User: toDTO(*u), Notified: true}

	if err := uc.notifier.NotifySignUp(ctx, u); err != nil {
		metrics.AdminNotifications.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error("user stored but admin notification failed", zap.Int64("id", u.ID), zap.Error(err))
		resp.Notified = false
		return resp, nil
	}
	metrics.AdminNotifications.WithLabelValues(metrics.ResultSuccess).Inc()

	log.Info("user signed up", zap.Int64("id", u.ID))
	return resp, nil
}

// ListUsers returns every stored user in insertion order.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	return &ListUsersResponse{Users: users}, nil
}

// SendTestEmail sends the fixed test mail to the administrator.
func (uc *Usecase) SendTestEmail(ctx context.Context) error {
	if err := uc.notifier.SendTestEmail(ctx); err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to send test email", zap.Error(err))
		var delivery *pkgerrors.DeliveryError
		if errors.As(err, &delivery) {
			return delivery
		}
		return pkgerrors.NewDeliveryError("Test Email", err)
	}
	return nil
}

func toDTO(u domain.User) User {
	return User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}
