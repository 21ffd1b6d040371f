package infrastructure

import (
	"signup-service/internal/config"
	"signup-service/pkg/mail"

	"go.uber.org/zap"
)

// NewMailSender creates the SMTP sender used for admin notifications
func NewMailSender(cfg *config.Config, l *zap.Logger) *mail.SMTPSender {
	if cfg.Mail.AdminEmail == "" {
		l.Warn("ADMIN_EMAIL is not set, admin notifications will fail")
	}

	return mail.NewSMTPSender(mail.Config{
		Host:               cfg.Mail.Host,
		Port:               cfg.Mail.Port,
		Username:           cfg.Mail.User,
		Password:           cfg.Mail.Password,
		SenderName:         cfg.Mail.SenderName,
		InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
	}, l)
}
