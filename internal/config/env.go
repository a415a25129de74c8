package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv fills unset environment variables from a .env file. Variables
// already present in the environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(dst *string, key string) {
	if v, ok := getEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := getEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := getEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.Driver, "DAYBOOK_DB_DRIVER")
	setString(&cfg.Database.Path, "DAYBOOK_DB_PATH")
	setString(&cfg.Database.DSN, "DAYBOOK_DB_DSN")

	setString(&cfg.Server.Bind, "DAYBOOK_BIND")
	setString(&cfg.Server.JWTSecret, "DAYBOOK_JWT_SECRET")
	setString(&cfg.Server.LockFile, "DAYBOOK_LOCK_FILE")

	setBool(&cfg.LLM.Enabled, "DAYBOOK_LLM_ENABLED")
	setBool(&cfg.LLM.LogCalls, "DAYBOOK_LLM_LOG_CALLS")
	setString(&cfg.LLM.Endpoint, "DAYBOOK_LLM_ENDPOINT")
	setString(&cfg.LLM.APIKey, "DAYBOOK_LLM_API_KEY")
	setString(&cfg.LLM.Model, "DAYBOOK_LLM_MODEL")
	setInt(&cfg.LLM.TimeoutMs, "DAYBOOK_LLM_TIMEOUT_MS")
	setInt(&cfg.LLM.MaxRetries, "DAYBOOK_LLM_MAX_RETRIES")
	setInt(&cfg.LLM.GenerateTimeout, "DAYBOOK_LLM_GENERATE_TIMEOUT_MS")
	setInt(&cfg.LLM.MoodTimeout, "DAYBOOK_LLM_MOOD_TIMEOUT_MS")
	setInt(&cfg.LLM.PickTimeout, "DAYBOOK_LLM_PICK_TIMEOUT_MS")
	setInt(&cfg.LLM.StylesTimeout, "DAYBOOK_LLM_STYLES_TIMEOUT_MS")

	setString(&cfg.Spotify.ClientID, "DAYBOOK_SPOTIFY_CLIENT_ID")
	setString(&cfg.Spotify.ClientSecret, "DAYBOOK_SPOTIFY_CLIENT_SECRET")
	setString(&cfg.Spotify.RefreshToken, "DAYBOOK_SPOTIFY_REFRESH_TOKEN")
	setString(&cfg.Spotify.TokenURL, "DAYBOOK_SPOTIFY_TOKEN_URL")
	setString(&cfg.Spotify.APIBaseURL, "DAYBOOK_SPOTIFY_API_BASE_URL")
	setInt(&cfg.Spotify.ExpiryMarginSeconds, "DAYBOOK_SPOTIFY_EXPIRY_MARGIN_SECONDS")
	if v, ok := getEnv("DAYBOOK_SPOTIFY_ALLOWED_USERS"); ok {
		cfg.Spotify.AllowedUsers = splitList(v)
	}

	setString(&cfg.Storage.Region, "DAYBOOK_S3_REGION")
	setString(&cfg.Storage.Endpoint, "DAYBOOK_S3_ENDPOINT")
	setString(&cfg.Storage.Bucket, "DAYBOOK_S3_BUCKET")
	setString(&cfg.Storage.AccessKey, "DAYBOOK_S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "DAYBOOK_S3_SECRET_KEY")

	setString(&cfg.Log.Level, "DAYBOOK_LOG_LEVEL")
	setString(&cfg.Log.Format, "DAYBOOK_LOG_FORMAT")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
