package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/daybook/internal/api"
	"github.com/alexanderramin/daybook/internal/logging"
	"github.com/alexanderramin/daybook/internal/mcpserver"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

func (a *App) apiServices() api.Services {
	return api.Services{
		Entries:         a.Entries,
		Recommendations: a.Recommendations,
		Styles:          a.Styles,
		Catalog:         a.Catalog,
		Quotes:          a.Quotes,
		Reactions:       a.Reactions,
		Uploads:         a.Uploads,
	}
}

func newServeCmd(a *App) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.Signer == nil {
				return errors.New("server.jwt_secret (or DAYBOOK_JWT_SECRET) must be set to serve")
			}
			if bind == "" && a.Config != nil {
				bind = a.Config.Server.Bind
			}
			logger := a.Logger
			if logger == nil {
				logger = logging.NewNop()
			}

			if a.Config != nil && a.Config.Server.LockFile != "" {
				release, err := acquireLock(a.Config.Server.LockFile)
				if err != nil {
					return err
				}
				defer release()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(a.apiServices(), a.Signer, logger)
			fmt.Fprintf(cmd.ErrOrStderr(), "daybook listening on %s\n", bind)
			return srv.ListenAndServe(ctx, bind)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "listen address (default from config)")
	return cmd
}

// acquireLock keeps a second server from opening the same database.
func acquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another daybook server holds %s", path)
	}
	return func() { _ = lock.Unlock() }, nil
}

func newMCPCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve entry tools over MCP on stdio",
		Long: `Serve entry tools over the Model Context Protocol on stdin/stdout.

Every tool acts as the --user identity. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(mcpserver.Services{
				Entries:         a.Entries,
				Recommendations: a.Recommendations,
				Styles:          a.Styles,
			}, userID, a.Version)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}
}

func newMigrateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.runtime == nil {
				return errors.New("migrate needs a configured database")
			}
			version, err := a.runtime.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, a.runtime.Handle.Dialect)
			return nil
		},
	}
}
