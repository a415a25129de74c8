package config

import "github.com/alexanderramin/daybook/internal/music"

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Database: Database{
			Driver: "sqlite",
			Path:   "~/.local/share/daybook/daybook.db",
		},
		Server: Server{
			Bind:     "127.0.0.1:8080",
			LockFile: "~/.local/share/daybook/daybook.lock",
		},
		LLM: LLM{
			Endpoint:   "https://api.openai.com/v1",
			Model:      "gpt-4o",
			TimeoutMs:  20000,
			MaxRetries: 1,
		},
		Spotify: Spotify{
			TokenURL:            "https://accounts.spotify.com/api/token",
			APIBaseURL:          music.DefaultSpotifyBaseURL,
			ExpiryMarginSeconds: int(music.DefaultExpiryMargin.Seconds()),
		},
		Storage: Storage{
			Region: "us-east-1",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}
