package importer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/daybook/internal/domain"
)

// ValidateSeed checks the seed file before conversion and returns every
// problem found, not just the first.
func ValidateSeed(schema *SeedSchema) []error {
	var errs []error
	if len(schema.Songs) == 0 && len(schema.Quotes) == 0 {
		return []error{fmt.Errorf("seed file has no songs or quotes")}
	}
	errs = append(errs, validateSongs(schema.Songs)...)
	errs = append(errs, validateQuotes(schema.Quotes)...)
	return errs
}

func validateSongs(songs []SongImport) []error {
	var errs []error
	seen := make(map[string]int, len(songs))

	for i, s := range songs {
		prefix := fmt.Sprintf("songs[%d]", i)
		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if strings.TrimSpace(s.Artist) == "" {
			errs = append(errs, fmt.Errorf("%s.artist is required", prefix))
		}
		if err := validatePlaybackURL(s.PlaybackURL); err != nil {
			errs = append(errs, fmt.Errorf("%s.playback_url: %w", prefix, err))
		}
		mood := strings.ToLower(strings.TrimSpace(s.Mood))
		if mood == "" {
			errs = append(errs, fmt.Errorf("%s.mood is required", prefix))
		} else if _, ok := domain.ParseMoodLabel(mood); !ok {
			errs = append(errs, fmt.Errorf("%s.mood: unknown mood %q", prefix, s.Mood))
		}

		key := strings.ToLower(strings.TrimSpace(s.Title)) + "\x00" + strings.ToLower(strings.TrimSpace(s.Artist))
		if first, dup := seen[key]; dup && strings.TrimSpace(s.Title) != "" {
			errs = append(errs, fmt.Errorf("%s duplicates songs[%d] (%s by %s)", prefix, first, s.Title, s.Artist))
		} else {
			seen[key] = i
		}
	}
	return errs
}

func validatePlaybackURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func validateQuotes(quotes []QuoteImport) []error {
	var errs []error
	for i, q := range quotes {
		prefix := fmt.Sprintf("quotes[%d]", i)
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Errorf("%s.text is required", prefix))
		}
		if strings.TrimSpace(q.Author) == "" {
			errs = append(errs, fmt.Errorf("%s.author is required", prefix))
		}
	}
	return errs
}
