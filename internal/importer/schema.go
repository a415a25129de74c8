package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// SeedSchema is the top-level JSON structure for seeding curated content.
type SeedSchema struct {
	Songs  []SongImport  `json:"songs"`
	Quotes []QuoteImport `json:"quotes,omitempty"`
}

// SongImport defines one curated catalog song.
type SongImport struct {
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	PlaybackURL string   `json:"playback_url"`
	Mood        string   `json:"mood"`
	Genre       string   `json:"genre,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// QuoteImport defines one quote. Active defaults to true when omitted.
type QuoteImport struct {
	Text    string `json:"text"`
	Author  string `json:"author"`
	Comment string `json:"comment,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// LoadSeed reads and parses a seed JSON file. Unknown fields are rejected
// so typos surface instead of being silently dropped.
func LoadSeed(path string) (*SeedSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var schema SeedSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}
