package mail

import (
	"context"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"signup-service/internal/testutil"
	"signup-service/pkg/metrics"
)

func TestSMTPSender_Send_HappyPath(t *testing.T) {
	srv := testutil.StartSMTPServer(t)
	sender := NewSMTPSender(Config{
		Host:       srv.Host,
		Port:       srv.Port,
		Username:   "admin@example.com",
		SenderName: "Sign-Up Service",
	}, zaptest.NewLogger(t))

	before := promtest.ToFloat64(metrics.MailSend.WithLabelValues(srv.Host, metrics.ResultSuccess))

	err := sender.Send(context.Background(), Message{
		From:    "admin@example.com",
		To:      []string{"admin@example.com"},
		Subject: "Hello",
		Text:    "plain body",
	})
	require.NoError(t, err)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "admin@example.com", msgs[0].From)
	assert.Equal(t, []string{"admin@example.com"}, msgs[0].To)
	assert.Contains(t, msgs[0].Data, "Subject: Hello")
	assert.Contains(t, msgs[0].Data, "plain body")
	assert.Contains(t, msgs[0].Data, "Sign-Up Service")

	after := promtest.ToFloat64(metrics.MailSend.WithLabelValues(srv.Host, metrics.ResultSuccess))
	assert.Equal(t, before+1, after)
}

func TestSMTPSender_Send_ConnectionRefused(t *testing.T) {
	sender := NewSMTPSender(Config{
		Host: "127.0.0.1",
		Port: testutil.ClosedPort(t),
	}, zaptest.NewLogger(t))

	before := promtest.ToFloat64(metrics.MailSend.WithLabelValues("127.0.0.1", metrics.ResultFailure))

	err := sender.Send(context.Background(), Message{
		From:    "admin@example.com",
		To:      []string{"admin@example.com"},
		Subject: "Hello",
		Text:    "body",
	})
	assert.Error(t, err)

	after := promtest.ToFloat64(metrics.MailSend.WithLabelValues("127.0.0.1", metrics.ResultFailure))
	assert.Equal(t, before+1, after)
}

func TestSMTPSender_Send_InvalidMessage(t *testing.T) {
	sender := NewSMTPSender(Config{Host: "127.0.0.1", Port: 25}, zaptest.NewLogger(t))

	tests := []struct {
		name string
		msg  Message
	}{
		{name: "empty sender", msg: Message{To: []string{"a@example.com"}, Subject: "s"}},
		{name: "no recipients", msg: Message{From: "a@example.com", Subject: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, sender.Send(context.Background(), tt.msg))
		})
	}
}

func TestSMTPSender_Send_CancelledContext(t *testing.T) {
	sender := NewSMTPSender(Config{Host: "127.0.0.1", Port: 25}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, Message{From: "a@example.com", To: []string{"b@example.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSMTPSender_ImplementsSender(t *testing.T) {
	assert.Implements(t, (*Sender)(nil), NewSMTPSender(Config{Host: "localhost", Port: 25}, zaptest.NewLogger(t)))
}
