package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/daybook/internal/app"
	"github.com/alexanderramin/daybook/internal/auth"
	"github.com/alexanderramin/daybook/internal/config"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/alexanderramin/daybook/internal/storage"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands. When Entries
// is nil at command start, the services are built from the configuration
// named by the global flags.
type App struct {
	Entries         service.EntryService
	Recommendations service.RecommendationService
	Styles          intelligence.StyleSuggestionService
	Catalog         service.CatalogService
	Quotes          service.QuoteService
	Reactions       service.ReactionService
	Uploads         storage.Presigner
	Signer          *auth.Signer

	Config *config.Config
	Logger *slog.Logger

	// UserID is the identity local commands act as.
	UserID  string
	Version string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	runtime *app.Runtime
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// attach copies the wired services from rt.
func (a *App) attach(rt *app.Runtime) {
	a.runtime = rt
	a.Entries = rt.Entries
	a.Recommendations = rt.Recommendations
	a.Styles = rt.Styles
	a.Catalog = rt.Catalog
	a.Quotes = rt.Quotes
	a.Reactions = rt.Reactions
	a.Uploads = rt.Uploads
	a.Signer = rt.Signer
	a.Config = rt.Config
	a.Logger = rt.Logger
}

type globalFlags struct {
	configPath string
	envFile    string
	user       string
}

// NewRootCmd creates the top-level "daybook" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "daybook",
		Short:         "Turn the moments of a day into a diary entry or work record",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if u := strings.TrimSpace(flags.user); u != "" {
				a.UserID = u
			} else if a.UserID == "" {
				a.UserID = defaultUser()
			}
			if a.Entries != nil {
				return nil
			}
			return a.bootstrap(cmd.Context(), flags)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.runtime == nil {
				return nil
			}
			err := a.runtime.Close()
			a.runtime = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/daybook/config.toml)")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before DAYBOOK_* variables")
	root.PersistentFlags().StringVarP(&flags.user, "user", "u", "", "user the command acts as (default $DAYBOOK_USER, then $USER)")

	root.AddCommand(
		newEntryCmd(a),
		newRecommendCmd(a),
		newReactCmd(a),
		newStylesCmd(a),
		newCatalogCmd(a),
		newQuoteCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newTokenCmd(a),
		newMigrateCmd(a),
		newImportCmd(a),
	)

	return root
}

func (a *App) bootstrap(ctx context.Context, flags *globalFlags) error {
	cfg, _, err := config.Load(flags.configPath, flags.envFile)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := app.Build(ctx, cfg, app.Options{})
	if err != nil {
		return err
	}
	a.attach(rt)
	return nil
}

func defaultUser() string {
	if u := strings.TrimSpace(os.Getenv("DAYBOOK_USER")); u != "" {
		return u
	}
	return strings.TrimSpace(os.Getenv("USER"))
}

func (a *App) requireUser() (string, error) {
	if strings.TrimSpace(a.UserID) == "" {
		return "", fmt.Errorf("no user set: pass --user or set DAYBOOK_USER")
	}
	return a.UserID, nil
}
