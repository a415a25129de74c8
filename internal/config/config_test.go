package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, resolved, err := Load(filepath.Join(dir, "missing.toml"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "missing.toml"), resolved)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, filepath.IsAbs(cfg.Database.Path), "~ is expanded")
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Bind)
	assert.Equal(t, 60*time.Second, cfg.ExpiryMargin())
	assert.False(t, cfg.Spotify.Enabled())
	assert.False(t, cfg.StorageConfig().Enabled())
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[database]
driver = "postgres"
dsn = "postgres://daybook@localhost/daybook"

[server]
bind = ":9090"
jwt_secret = "from-file"

[llm]
enabled = true
model = "gpt-4o-mini"
generate_timeout_ms = 45000

[spotify]
client_id = "id"
client_secret = "secret"
refresh_token = "refresh"
allowed_users = ["alice", "bob"]

[log]
level = "DEBUG"
format = "json"
`)

	cfg, _, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, ":9090", cfg.Server.Bind)
	assert.Equal(t, "from-file", cfg.Server.JWTSecret)
	assert.True(t, cfg.Spotify.Enabled())
	assert.Equal(t, []string{"alice", "bob"}, cfg.Spotify.AllowedUsers)
	assert.Equal(t, "debug", cfg.Log.Level)

	lc := cfg.LLMConfig()
	assert.True(t, lc.Enabled)
	assert.Equal(t, "gpt-4o-mini", lc.Model)
	assert.Equal(t, 45000, lc.TaskTimeout(llm.TaskGenerateEntry))
	assert.Equal(t, llm.DefaultConfig().TaskTimeout(llm.TaskClassifyMood), lc.TaskTimeout(llm.TaskClassifyMood))
}

func TestLoad_EnvBeatsDotEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[server]
jwt_secret = "from-file"
bind = ":1111"
`)
	envFile := writeFile(t, dir, ".env", "DAYBOOK_JWT_SECRET=from-dotenv\nDAYBOOK_BIND=:2222\nDAYBOOK_S3_BUCKET=photos\n")

	t.Setenv("DAYBOOK_BIND", ":3333")
	// Registered so t.Setenv restores them after godotenv sets them.
	t.Setenv("DAYBOOK_JWT_SECRET", "")
	t.Setenv("DAYBOOK_S3_BUCKET", "")
	os.Unsetenv("DAYBOOK_JWT_SECRET")
	os.Unsetenv("DAYBOOK_S3_BUCKET")

	cfg, _, err := Load(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, ":3333", cfg.Server.Bind, "process env wins")
	assert.Equal(t, "from-dotenv", cfg.Server.JWTSecret, ".env beats file")
	assert.Equal(t, "photos", cfg.Storage.Bucket)
	assert.True(t, cfg.StorageConfig().Enabled())
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Load(filepath.Join(dir, "none.toml"), filepath.Join(dir, ".env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := writeFile(t, dir, "bad.toml", "[database\n")
	_, _, err := Load(bad, "")
	assert.ErrorContains(t, err, "parse config")

	pg := writeFile(t, dir, "pg.toml", "[database]\ndriver = \"postgres\"\n")
	_, _, err = Load(pg, "")
	assert.ErrorContains(t, err, "database.dsn")

	unknown := writeFile(t, dir, "unknown.toml", "[database]\ndriver = \"mysql\"\n")
	_, _, err = Load(unknown, "")
	assert.ErrorContains(t, err, "unsupported")

	_, _, err = Load(dir, "")
	assert.ErrorContains(t, err, "directory")
}

func TestEnvOverrides_IgnoreMalformedNumbers(t *testing.T) {
	t.Setenv("DAYBOOK_LLM_TIMEOUT_MS", "soon")
	t.Setenv("DAYBOOK_LLM_ENABLED", "yes-please")
	t.Setenv("DAYBOOK_SPOTIFY_ALLOWED_USERS", " alice, ,bob ")

	cfg := Default()
	applyEnv(&cfg)
	assert.Equal(t, 20000, cfg.LLM.TimeoutMs)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Spotify.AllowedUsers)
}
