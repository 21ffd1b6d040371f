// Package metrics holds the Prometheus collectors of the sign-up service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	UsersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signup_users_created_total",
		Help: "Total number of stored sign-ups",
	})
	AdminNotifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_admin_notifications_total",
		Help: "Admin sign-up notifications by result",
	}, []string{"result"})
	MailSend = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_mail_send_total",
		Help: "SMTP send attempts by host and result",
	}, []string{"host", "result"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(UsersCreated)
	prometheus.MustRegister(AdminNotifications)
	prometheus.MustRegister(MailSend)
	prometheus.MustRegister(HTTPRequests)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
