// Package clean implements the hrhub clean command.
package clean

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrsuite/hrhub/internal/conf"
	"github.com/hrsuite/hrhub/internal/kvstore"
	"github.com/hrsuite/hrhub/internal/notification"
)

// Command returns the clean subcommand: it removes read notifications older
// than the retention window, globally or for one user.
func Command(settings *conf.Settings) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove read notifications older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := kvstore.Open(settings.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open data directory: %w", err)
			}

			svc := notification.NewService(&notification.ServiceConfig{
				Debug:         settings.Debug,
				RetentionDays: settings.RetentionDays,
				SeedUsers:     settings.SeedUsers,
			}, kv)

			removed := svc.CleanOld(user)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d notification(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict the sweep to one user id")

	return cmd
}
