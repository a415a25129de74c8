// Package app assembles the daybook services from a resolved configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/daybook/internal/auth"
	"github.com/alexanderramin/daybook/internal/config"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/logging"
	"github.com/alexanderramin/daybook/internal/music"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/alexanderramin/daybook/internal/storage"
)

// Runtime holds every wired dependency. Close releases the database.
type Runtime struct {
	Config *config.Config
	Logger *slog.Logger
	Handle *db.Handle

	Entries         service.EntryService
	Recommendations service.RecommendationService
	Styles          intelligence.StyleSuggestionService
	Catalog         service.CatalogService
	Quotes          service.QuoteService
	Reactions       service.ReactionService

	// Uploads is nil when object storage is not configured.
	Uploads storage.Presigner
	// Signer is nil when no JWT secret is configured.
	Signer *auth.Signer
}

// Options tweak Build for commands that need different wiring.
type Options struct {
	// LogOutput defaults to stderr. The MCP server must keep stdout clean.
	LogOutput io.Writer
}

// Build opens the database and wires repositories, the LLM client, the
// external catalog and storage according to cfg.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})
	if err != nil {
		return nil, err
	}

	handle, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.Path, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	rt := &Runtime{Config: cfg, Logger: logger, Handle: handle}
	if err := rt.wire(ctx); err != nil {
		handle.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) wire(ctx context.Context) error {
	cfg := rt.Config
	conn := rt.Handle.Conn()

	entries := repository.NewSQLEntryRepo(conn)
	catalog := repository.NewSQLCatalogRepo(conn)

	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		llmObserver = llm.NewLogObserver(rt.Logger)
	}
	llmClient := newLLMClient(cfg.LLMConfig(), llmObserver)

	observer := service.NewLogUseCaseObserver(logging.NewSlogLogger(rt.Logger))

	recOpts := []service.RecommendationOption{service.WithRecommendationObserver(observer)}
	if cfg.Spotify.Enabled() {
		ext, err := newSpotify(cfg)
		if err != nil {
			return err
		}
		recOpts = append(recOpts, service.WithExternalCatalog(
			ext,
			intelligence.NewTrackPicker(llmClient),
			music.AllowList(cfg.Spotify.AllowedUsers),
		))
	}

	rt.Entries = service.NewEntryService(entries, rt.Handle.UnitOfWork(), intelligence.NewEntryGenerator(llmClient), observer)
	rt.Recommendations = service.NewRecommendationService(entries, catalog, intelligence.NewMoodClassifier(llmClient), recOpts...)
	rt.Styles = intelligence.NewStyleSuggestionService(llmClient, llmObserver)
	rt.Catalog = service.NewCatalogService(catalog)
	rt.Quotes = service.NewQuoteService(repository.NewSQLQuoteRepo(conn))
	rt.Reactions = service.NewReactionService(entries, repository.NewSQLReactionRepo(conn))

	if sc := cfg.StorageConfig(); sc.Enabled() {
		p, err := storage.NewS3Presigner(sc)
		if err != nil {
			return fmt.Errorf("configuring storage: %w", err)
		}
		rt.Uploads = p
	}

	if cfg.Server.JWTSecret != "" {
		signer, err := auth.NewSigner(cfg.Server.JWTSecret)
		if err != nil {
			return err
		}
		rt.Signer = signer
	}

	rt.Logger.DebugContext(ctx, "runtime wired",
		slog.String("db_driver", string(rt.Handle.Dialect)),
		slog.Bool("llm", cfg.LLM.Enabled),
		slog.Bool("spotify", cfg.Spotify.Enabled()),
		slog.Bool("storage", rt.Uploads != nil),
	)
	return nil
}

func newLLMClient(cfg llm.LLMConfig, observer llm.Observer) llm.LLMClient {
	if !cfg.Enabled {
		return llm.NewDisabledClient()
	}
	return llm.NewChatClient(cfg, observer)
}

func newSpotify(cfg *config.Config) (*music.SpotifyClient, error) {
	refresh := music.NewOAuthRefresher(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.TokenURL, cfg.Spotify.RefreshToken)
	cache := music.NewCredentialCache(refresh, music.WithExpiryMargin(cfg.ExpiryMargin()))
	client, err := music.NewSpotifyClient(cfg.Spotify.APIBaseURL, cache)
	if err != nil {
		return nil, fmt.Errorf("configuring spotify: %w", err)
	}
	return client, nil
}

// Migrate applies pending migrations and returns the schema version.
func (rt *Runtime) Migrate(ctx context.Context) (int64, error) {
	if err := db.Migrate(ctx, rt.Handle.DB, rt.Handle.Dialect); err != nil {
		return 0, err
	}
	return db.SchemaVersion(ctx, rt.Handle.DB, rt.Handle.Dialect)
}

func (rt *Runtime) Close() error {
	if rt.Handle == nil {
		return nil
	}
	return rt.Handle.Close()
}
