package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"signup-service/internal/adapter/gin/handler"
	"signup-service/internal/config"
	usecase "signup-service/internal/usecase/user"
	"signup-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubUsecase answers every call successfully with an empty store
type stubUsecase struct{}

func (stubUsecase) SignUp(context.Context, usecase.SignUpRequest) (*usecase.SignUpResponse, error) {
	return &usecase.SignUpResponse{User: usecase.User{ID: 1}, Notified: true}, nil
}

func (stubUsecase) ListUsers(context.Context) (*usecase.ListUsersResponse, error) {
	return &usecase.ListUsersResponse{Users: []usecase.User{}}, nil
}

func (stubUsecase) SendTestEmail(context.Context) error { return nil }

func setupRouter(t *testing.T, mutate func(cfg *config.Config)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	cfg := &config.Config{
		App:    config.AppConfig{Env: "test"},
		Logger: config.LoggerConfig{ServiceName: "signup-service"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	return SetupRouter(handler.NewSignUpHandler(stubUsecase{}, log), cfg, log)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "signup-service", body["service"])
}

func TestRouter_SignUpRoutes(t *testing.T) {
	r := setupRouter(t, nil)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/admin/users", http.StatusOK},
		{http.MethodGet, "/test-email", http.StatusOK},
		{http.MethodGet, "/signup", http.StatusNotFound},
		{http.MethodPost, "/admin/users", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(r, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	r := setupRouter(t, nil)

	t.Run("Generated", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(logger.RequestIDHeader, "req-123")

		w := serve(r, req)
		assert.Equal(t, "req-123", w.Header().Get(logger.RequestIDHeader))
	})
}

func TestRouter_Metrics(t *testing.T) {
	r := setupRouter(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signup_users_created_total")
}

func TestRouter_Docs(t *testing.T) {
	r := setupRouter(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, OpenAPIPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"/signup"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), OpenAPIPath)
}

func TestRouter_CORS(t *testing.T) {
	const origin = "http://localhost:5173"

	t.Run("Enabled", func(t *testing.T) {
		r := setupRouter(t, func(cfg *config.Config) {
			cfg.App.AllowedOrigins = []string{origin}
		})

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Origin", origin)
		w := serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Disabled", func(t *testing.T) {
		r := setupRouter(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Origin", origin)
		w := serve(r, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_StaticForm(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<form action=\"/signup\"></form>"), 0o600))

	r := setupRouter(t, func(cfg *config.Config) {
		cfg.App.StaticDir = dir
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/signup"`)

	// API routes are not shadowed by the file server
	w = serve(r, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
