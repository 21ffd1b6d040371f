package infrastructure

import (
	"context"
	"testing"

	"signup-service/internal/adapter/db/sqlite"
	"signup-service/internal/config"
	"signup-service/internal/domain/user"
	"signup-service/internal/testutil"
	"signup-service/pkg/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewDatabase(t *testing.T) {
	cfg := &config.Config{Logger: config.LoggerConfig{Level: "info", SlowQuerySeconds: 0.2}}

	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	repo := sqlite.NewUserRepoSQLite(db, zaptest.NewLogger(t))
	created, err := repo.Create(context.Background(), &user.User{Name: "A", Email: "a@example.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}

func TestNewMailSender(t *testing.T) {
	srv := testutil.StartSMTPServer(t)
	cfg := &config.Config{Mail: config.MailConfig{
		AdminEmail: "admin@example.com",
		Host:       srv.Host,
		Port:       srv.Port,
		SenderName: "Sign-Up Service",
	}}

	sender := NewMailSender(cfg, zaptest.NewLogger(t))
	require.NoError(t, sender.Send(context.Background(), mail.Message{
		From:    "admin@example.com",
		To:      []string{"admin@example.com"},
		Subject: "hello",
		Text:    "world",
	}))

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "admin@example.com", msgs[0].From)
}
