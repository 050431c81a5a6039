package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  token_secret: "unit-test-secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/expenses.db", cfg.Database.Path)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Slack.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
auth:
  token_secret: "unit-test-secret"
  token_ttl: 1h
  admin_emails:
    - "keiri@example.com"
slack:
  webhook_url: "https://hooks.slack.com/services/T/B/x"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"keiri@example.com"}, cfg.Auth.AdminEmails)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/x", cfg.Slack.WebhookURL)
}

func TestLoad_SecretFromEnv(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")
	path := writeConfig(t, `
server:
  port: 8081
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.TokenSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_secret")
}
