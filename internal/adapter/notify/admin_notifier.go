package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "signup-service/internal/domain/user"
	pkgerrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"
	"signup-service/pkg/mail"
)

// AdminNotifier mails the administrator from and to the same address.
type AdminNotifier struct {
	sender      mail.Sender
	adminEmail  string
	serviceName string
	log         *zap.Logger
}

// NewAdminNotifier creates a notifier for adminEmail.
func NewAdminNotifier(sender mail.Sender, adminEmail, serviceName string, log *zap.Logger) *AdminNotifier {
	return &AdminNotifier{
		sender:      sender,
		adminEmail:  adminEmail,
		serviceName: serviceName,
		log:         log,
	}
}

// NotifySignUp tells the administrator about a new user.
func (n *AdminNotifier) NotifySignUp(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("notify: user cannot be nil")
	}

	body, err := RenderSignUp(SignUpParams{Name: u.Name, Email: u.Email})
	if err != nil {
		return err
	}

	return n.send(ctx, SignUpSubject, body)
}

// SendTestEmail sends a fixed mail to check the SMTP account.
func (n *AdminNotifier) SendTestEmail(ctx context.Context) error {
	body, err := RenderTest(TestParams{ServiceName: n.serviceName})
	if err != nil {
		return err
	}

	return n.send(ctx, TestSubject, body)
}

func (n *AdminNotifier) send(ctx context.Context, subject, body string) error {
	if n.adminEmail == "" {
		return pkgerrors.NewDeliveryError(subject, errors.New("admin email is not configured"))
	}

	err := n.sender.Send(ctx, mail.Message{
		From:    n.adminEmail,
		To:      []string{n.adminEmail},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return pkgerrors.NewDeliveryError(subject, err)
	}

	logger.WithContext(ctx, n.log).Debug("admin notified", zap.String("subject", subject))
	return nil
}
