// Package mail delivers plain-text mails over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"signup-service/pkg/logger"
	"signup-service/pkg/metrics"
)

// Message is a fully rendered mail.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
}

// Sender abstracts mail delivery so callers can be tested without SMTP.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host               string
	Port               int
	Username           string
	Password           string
	SenderName         string
	InsecureSkipVerify bool
}

// SMTPSender sends each message over a fresh SMTP connection.
type SMTPSender struct {
	dialer     *gomail.Dialer
	senderName string
	log        *zap.Logger
}

// NewSMTPSender creates a Sender backed by gomail.
func NewSMTPSender(cfg Config, log *zap.Logger) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warn("TLS verification disabled for SMTP", zap.String("host", cfg.Host))
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via MAIL_INSECURE_SKIP_VERIFY
	}

	log.Info("mail sender configured",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("user", cfg.Username),
	)

	return &SMTPSender{
		dialer:     d,
		senderName: cfg.SenderName,
		log:        log,
	}
}

// Send delivers msg. The SMTP exchange is not interruptible; a cancelled
// context makes Send return early while the exchange finishes in the background.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" {
		return errors.New("mail: sender address is empty")
	}
	if len(msg.To) == 0 {
		return errors.New("mail: no recipients")
	}

	log := logger.WithContext(ctx, s.log)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From, s.senderName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		metrics.MailSend.WithLabelValues(s.dialer.Host, metrics.ResultFailure).Inc()
		log.Error("failed to send mail",
			zap.String("subject", msg.Subject),
			zap.Int("recipients", len(msg.To)),
			zap.Error(err),
		)
		return fmt.Errorf("send mail via %s:%d: %w", s.dialer.Host, s.dialer.Port, err)
	}

	metrics.MailSend.WithLabelValues(s.dialer.Host, metrics.ResultSuccess).Inc()
	log.Info("mail sent", zap.String("subject", msg.Subject), zap.Int("recipients", len(msg.To)))
	return nil
}
