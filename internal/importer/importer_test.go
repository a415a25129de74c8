package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrBool(b bool) *bool { return &b }

func validSeed() *SeedSchema {
	return &SeedSchema{
		Songs: []SongImport{
			{Title: "Weightless", Artist: "Marconi Union", PlaybackURL: "https://example.com/w", Mood: "calm", Tags: []string{" sleep ", "", "ambient"}},
			{Title: "Harvest Moon", Artist: "Neil Young", PlaybackURL: "https://example.com/hm", Mood: "Nostalgic", Genre: "folk"},
		},
		Quotes: []QuoteImport{
			{Text: "Be here now.", Author: "Ram Dass"},
			{Text: "Hidden", Author: "Someone", Active: ptrBool(false), Comment: "  draft  "},
		},
	}
}

func TestValidateSeed_Valid(t *testing.T) {
	assert.Empty(t, ValidateSeed(validSeed()))
}

func TestValidateSeed_Empty(t *testing.T) {
	errs := ValidateSeed(&SeedSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no songs or quotes")
}

func TestValidateSeed_CollectsAllErrors(t *testing.T) {
	schema := &SeedSchema{
		Songs: []SongImport{
			{Title: "", Artist: "", PlaybackURL: "ftp://example.com/x", Mood: "grumpy"},
			{Title: "A", Artist: "B", PlaybackURL: "https://example.com/a", Mood: "happy"},
			{Title: "a", Artist: "b ", PlaybackURL: "https:///nohost", Mood: ""},
		},
		Quotes: []QuoteImport{{Text: " ", Author: "x"}},
	}

	var msgs []string
	for _, err := range ValidateSeed(schema) {
		msgs = append(msgs, err.Error())
	}

	assert.Contains(t, msgs, "songs[0].title is required")
	assert.Contains(t, msgs, "songs[0].artist is required")
	assert.Contains(t, msgs, `songs[0].playback_url: scheme must be http or https, got "ftp"`)
	assert.Contains(t, msgs, `songs[0].mood: unknown mood "grumpy"`)
	assert.Contains(t, msgs, `songs[2].playback_url: missing host in "https:///nohost"`)
	assert.Contains(t, msgs, "songs[2].mood is required")
	assert.Contains(t, msgs, "songs[2] duplicates songs[1] (a by b )")
	assert.Contains(t, msgs, "quotes[0].text is required")
	assert.Len(t, msgs, 8)
}

func TestConvert(t *testing.T) {
	seed := Convert(validSeed())

	require.Len(t, seed.Songs, 2)
	assert.Equal(t, "sleep,ambient", *seed.Songs[0].Tags)
	assert.Nil(t, seed.Songs[0].Genre)
	assert.Equal(t, "folk", *seed.Songs[1].Genre)
	assert.Nil(t, seed.Songs[1].Tags)
	assert.Empty(t, seed.Songs[0].ID, "IDs are assigned on create")

	require.Len(t, seed.Quotes, 2)
	assert.True(t, seed.Quotes[0].IsActive)
	assert.Nil(t, seed.Quotes[0].Comment)
	assert.False(t, seed.Quotes[1].IsActive)
	assert.Equal(t, "draft", *seed.Quotes[1].Comment)
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"songs":[{"title":"T","artist":"A","playback_url":"https://x.io/t","mood":"calm","tags":["a"]}]}`), 0o644))
	schema, err := LoadSeed(good)
	require.NoError(t, err)
	require.Len(t, schema.Songs, 1)
	assert.Equal(t, []string{"a"}, schema.Songs[0].Tags)

	typo := filepath.Join(dir, "typo.json")
	require.NoError(t, os.WriteFile(typo, []byte(`{"songs":[{"titel":"T"}]}`), 0o644))
	_, err = LoadSeed(typo)
	assert.ErrorContains(t, err, "parsing seed file")

	_, err = LoadSeed(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
