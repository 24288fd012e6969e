package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rrajpuro/defined-go/internal/constants"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// NewAuditLogsCommand creates the audit-logs command group
func NewAuditLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audit-logs",
		Aliases: []string{"audit"},
		Short:   "Inspect audit logs",
		Long:    "List audit log entries, optionally filtered by target",
	}

	cmd.AddCommand(newAuditLogsListCommand())

	return cmd
}

func newAuditLogsListCommand() *cobra.Command {
	var (
		allPages   bool
		pageSize   int
		targetID   string
		targetType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()
			opts := &defined.AuditLogListOptions{
				ListOptions:      defined.ListOptions{PageSize: pageSize},
				FilterTargetID:   targetID,
				FilterTargetType: targetType,
			}

			var entries []defined.AuditLog

			if allPages {
				it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.AuditLog], error) {
					pageOpts := *opts
					pageOpts.Cursor = cursor

					return client.AuditLogs().List(ctx, &pageOpts)
				})

				entries, err = defined.CollectAll(it)
				if err != nil {
					return fmt.Errorf("failed to list audit logs: %w", err)
				}
			} else {
				page, err := client.AuditLogs().List(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list audit logs: %w", err)
				}

				entries = page.Data
			}

			if handled, err := renderEncoded(viper.GetString("output"), entries); handled {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No audit log entries found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Time", "Action", "Actor", "Target", "Type")

			for _, entry := range entries {
				actor := entry.ActorID
				if actor == "" {
					actor = NotAvailable
				}

				target := entry.TargetID
				if target == "" {
					target = NotAvailable
				}

				_ = table.Append(entry.CreatedAt.Format(constants.TimestampDisplayFormat),
					entry.Action, actor, target, entry.TargetType)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&targetID, "target", "", "filter by target ID")
	cmd.Flags().StringVar(&targetType, "target-type", "", "filter by target type (host, network, role, ...)")

	return cmd
}
