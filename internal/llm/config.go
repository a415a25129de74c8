package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskGenerateEntry TaskType = "generate_entry"
	TaskClassifyMood  TaskType = "classify_mood"
	TaskPickTracks    TaskType = "pick_tracks"
	TaskSuggestStyles TaskType = "suggest_styles"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled          bool
	LogCalls         bool
	Endpoint         string
	APIKey           string
	Model            string
	TimeoutMs        int
	MaxRetries       int
	RetryBaseDelayMs int
	Tasks            map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:          false,
		LogCalls:         false,
		Endpoint:         "https://api.openai.com/v1",
		Model:            "gpt-4o",
		TimeoutMs:        20000,
		MaxRetries:       1,
		RetryBaseDelayMs: 500,
		Tasks: map[TaskType]TaskConfig{
			TaskGenerateEntry: {Temperature: 0.8, MaxTokens: 500, TimeoutMs: 30000},
			TaskClassifyMood:  {Temperature: 0, MaxTokens: 5, TimeoutMs: 8000},
			TaskPickTracks:    {Temperature: 0.2, MaxTokens: 200, TimeoutMs: 10000},
			TaskSuggestStyles: {Temperature: 0.7, MaxTokens: 600, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays DAYBOOK_LLM_* environment variables onto cfg.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("DAYBOOK_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYBOOK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYBOOK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAYBOOK_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DAYBOOK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DAYBOOK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYBOOK_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskGenerateEntry, "DAYBOOK_LLM_GENERATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskClassifyMood, "DAYBOOK_LLM_MOOD_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskPickTracks, "DAYBOOK_LLM_PICK_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskSuggestStyles, "DAYBOOK_LLM_STYLES_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
