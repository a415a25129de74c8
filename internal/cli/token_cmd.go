package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue API bearer tokens",
	}

	var (
		admin bool
		ttl   time.Duration
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.Signer == nil {
				return errors.New("server.jwt_secret (or DAYBOOK_JWT_SECRET) must be set to issue tokens")
			}
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			tok, err := a.Signer.Issue(auth.Identity{UserID: userID, Admin: admin}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().BoolVar(&admin, "admin", false, "grant catalog and quote administration")
	issue.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token validity")

	cmd.AddCommand(issue)
	return cmd
}
