package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/storage"
	"github.com/pelletier/go-toml/v2"
)

type Database struct {
	// Driver is "sqlite" or "postgres".
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

type Server struct {
	Bind      string `toml:"bind"`
	JWTSecret string `toml:"jwt_secret"`
	LockFile  string `toml:"lock_file"`
}

type LLM struct {
	Enabled         bool   `toml:"enabled"`
	LogCalls        bool   `toml:"log_calls"`
	Endpoint        string `toml:"endpoint"`
	APIKey          string `toml:"api_key"`
	Model           string `toml:"model"`
	TimeoutMs       int    `toml:"timeout_ms"`
	MaxRetries      int    `toml:"max_retries"`
	GenerateTimeout int    `toml:"generate_timeout_ms"`
	MoodTimeout     int    `toml:"mood_timeout_ms"`
	PickTimeout     int    `toml:"pick_timeout_ms"`
	StylesTimeout   int    `toml:"styles_timeout_ms"`
}

type Spotify struct {
	ClientID            string   `toml:"client_id"`
	ClientSecret        string   `toml:"client_secret"`
	RefreshToken        string   `toml:"refresh_token"`
	TokenURL            string   `toml:"token_url"`
	APIBaseURL          string   `toml:"api_base_url"`
	ExpiryMarginSeconds int      `toml:"expiry_margin_seconds"`
	AllowedUsers        []string `toml:"allowed_users"`
}

func (s Spotify) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.RefreshToken != ""
}

type Storage struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full daybook configuration.
type Config struct {
	Database Database `toml:"database"`
	Server   Server   `toml:"server"`
	LLM      LLM      `toml:"llm"`
	Spotify  Spotify  `toml:"spotify"`
	Storage  Storage  `toml:"storage"`
	Log      Log      `toml:"log"`
}

const defaultConfigPath = "~/.config/daybook/config.toml"

// Load resolves the configuration in order: defaults, TOML file, .env file,
// then DAYBOOK_* environment variables. A missing file is not an error.
// envFile may be empty to skip .env loading.
func Load(path, envFile string) (*Config, string, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}
	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotEnv(envFile); err != nil {
		return nil, "", err
	}
	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() error {
	var err error
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Path, err = expandPath(c.Database.Path); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}
	if c.Server.LockFile, err = expandPath(c.Server.LockFile); err != nil {
		return fmt.Errorf("server.lock_file: %w", err)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	return nil
}

// Validate rejects combinations that cannot start.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver: unsupported value %q", c.Database.Driver)
	}
	if c.Spotify.ExpiryMarginSeconds < 0 {
		return errors.New("spotify.expiry_margin_seconds must not be negative")
	}
	if c.LLM.Enabled && c.LLM.Endpoint == "" {
		return errors.New("llm.endpoint is required when llm is enabled")
	}
	return nil
}

// LLMConfig converts the [llm] section into the client configuration.
func (c *Config) LLMConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	if c.LLM.Endpoint != "" {
		out.Endpoint = c.LLM.Endpoint
	}
	out.APIKey = c.LLM.APIKey
	if c.LLM.Model != "" {
		out.Model = c.LLM.Model
	}
	if c.LLM.TimeoutMs > 0 {
		out.TimeoutMs = c.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries >= 0 {
		out.MaxRetries = c.LLM.MaxRetries
	}
	setTaskTimeout(&out, llm.TaskGenerateEntry, c.LLM.GenerateTimeout)
	setTaskTimeout(&out, llm.TaskClassifyMood, c.LLM.MoodTimeout)
	setTaskTimeout(&out, llm.TaskPickTracks, c.LLM.PickTimeout)
	setTaskTimeout(&out, llm.TaskSuggestStyles, c.LLM.StylesTimeout)
	return out
}

func setTaskTimeout(cfg *llm.LLMConfig, task llm.TaskType, ms int) {
	if ms <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = ms
	cfg.Tasks[task] = tc
}

func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Region:    c.Storage.Region,
		Endpoint:  c.Storage.Endpoint,
		Bucket:    c.Storage.Bucket,
		AccessKey: c.Storage.AccessKey,
		SecretKey: c.Storage.SecretKey,
	}
}

func (c *Config) ExpiryMargin() time.Duration {
	return time.Duration(c.Spotify.ExpiryMarginSeconds) * time.Second
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
