// Package notify implements the hrhub notify command.
package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrsuite/hrhub/internal/conf"
	"github.com/hrsuite/hrhub/internal/kvstore"
	"github.com/hrsuite/hrhub/internal/notification"
)

// Command returns a cobra command that creates a notification through the
// notification service, persisting it to the local snapshot.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		users    []string
		typ      string
		module   string
		moduleID string
		title    string
		message  string
		redirect string
		metadata []string
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Create a notification for one or more users",
		Long: `Create a notification through the notification service.

Examples:
  # Basic notification
  hrhub notify --user=admin@hrhub.local --type=info --title="Test" --message="Hello"

  # Module-tagged notification with a deep link
  hrhub notify --user=user@hrhub.local --type=success --module=vacations \
    --title="Request Approved" --message="Your vacation was approved" --redirect=/vacations

  # Broadcast with metadata
  hrhub notify --user=a@x --user=b@x --metadata="source=cli" --metadata="urgent=true"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ntype := notification.Type(typ)
			if !ntype.Valid() {
				return fmt.Errorf("invalid type: %s", typ)
			}

			nmodule := notification.Module(module)
			if module != "" && !nmodule.Valid() {
				return fmt.Errorf("invalid module: %s", module)
			}

			if len(users) == 0 {
				return fmt.Errorf("at least one --user is required")
			}

			// Parse metadata if provided
			metadataMap := make(map[string]any)
			for _, kv := range metadata {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid metadata format: %s (expected key=value)", kv)
				}
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])

				// Numbers, then booleans, otherwise strings
				if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
					metadataMap[key] = floatVal
				} else if boolVal, err := strconv.ParseBool(value); err == nil {
					metadataMap[key] = boolVal
				} else {
					metadataMap[key] = value
				}
			}

			kv, err := kvstore.Open(settings.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open data directory: %w", err)
			}

			svc := notification.NewService(&notification.ServiceConfig{
				Debug:         settings.Debug,
				RetentionDays: settings.RetentionDays,
				SeedUsers:     settings.SeedUsers,
			}, kv)

			params := notification.CreateParams{
				UserIDs:     users,
				Type:        ntype,
				Title:       title,
				Message:     message,
				Module:      nmodule,
				ModuleID:    moduleID,
				RedirectURL: redirect,
			}
			if len(metadataMap) > 0 {
				params.Metadata = metadataMap
			}

			created := svc.Create(params)

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d notification(s) for %d recipient(s)\n", len(created), len(users))
			for _, n := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "  id=%s user=%s type=%s\n", n.ID, n.UserID, n.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&users, "user", nil, "Recipient user id (repeatable)")
	cmd.Flags().StringVar(&typ, "type", "info", "Notification type: info|success|warning|error|approval|request|reminder|expiration")
	cmd.Flags().StringVar(&module, "module", "", "Module tag: dashboard|employees|departments|reports|config|permissions|vacations|attendance")
	cmd.Flags().StringVar(&moduleID, "module-id", "", "Module record id for deep-linking")
	cmd.Flags().StringVar(&title, "title", "Test Notification", "Notification title")
	cmd.Flags().StringVar(&message, "message", "This is a test notification", "Notification message")
	cmd.Flags().StringVar(&redirect, "redirect", "", "Redirect target path")
	cmd.Flags().StringSliceVar(&metadata, "metadata", nil, "Metadata key-value pairs in format key=value (supports numbers, booleans, and strings)")

	return cmd
}
