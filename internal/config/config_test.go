package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks variables that could leak in from the host; viper treats empty as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "APP_ENV", "STORE_DRIVER", "MAIL_HOST", "MAIL_PORT", "MAIL_USER", "CORS_ALLOWED_ORIGINS", "SERVICE_NAME", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, StoreMemory, cfg.App.StoreDriver)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "signup-service", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.App.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://example.com ,")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, ":8081", cfg.App.Addr())
	assert.Equal(t, "admin@example.com", cfg.Mail.AdminEmail)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "admin@example.com", cfg.Mail.User, "SMTP user falls back to the admin address")
	assert.Equal(t, StoreSQLite, cfg.App.StoreDriver)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.App.AllowedOrigins)
}

func TestLoadConfig_AppEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "PORT=4000\nMAIL_HOST=smtp.example.com\nMAIL_USER=relay-user\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, "relay-user", cfg.Mail.User)
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := "ADMIN_EMAIL=dotenv@example.com\nEMAIL_PASSWORD=from-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	// Registered with t.Setenv so godotenv's writes are restored after the test
	t.Setenv("ADMIN_EMAIL", "env@example.com")
	t.Setenv("EMAIL_PASSWORD", "")
	require.NoError(t, os.Unsetenv("EMAIL_PASSWORD"))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "env@example.com", cfg.Mail.AdminEmail)
	assert.Equal(t, "from-dotenv", cfg.Mail.Password)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:  AppConfig{Port: "3000", ShutdownTimeoutSeconds: 5, StoreDriver: StoreMemory},
			Mail: MailConfig{Port: 587},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "non numeric port", mutate: func(c *Config) { c.App.Port = "http" }, wantErr: "PORT"},
		{name: "port out of range", mutate: func(c *Config) { c.App.Port = "70000" }, wantErr: "PORT"},
		{name: "unknown store", mutate: func(c *Config) { c.App.StoreDriver = "postgres" }, wantErr: "STORE_DRIVER"},
		{name: "mail port", mutate: func(c *Config) { c.Mail.Port = 0 }, wantErr: "MAIL_PORT"},
		{name: "wildcard origin", mutate: func(c *Config) { c.App.AllowedOrigins = []string{"*"} }},
		{name: "origin without scheme", mutate: func(c *Config) { c.App.AllowedOrigins = []string{"localhost:5173"} }, wantErr: "CORS_ALLOWED_ORIGINS"},
		{name: "shutdown timeout", mutate: func(c *Config) { c.App.ShutdownTimeoutSeconds = 0 }, wantErr: "SHUTDOWN_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
