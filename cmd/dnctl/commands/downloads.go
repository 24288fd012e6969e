package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDownloadsCommand creates the downloads command
func NewDownloadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "downloads",
		Short: "Show dnclient download links",
		Long:  "Show available dnclient software downloads. No API key is required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createUnauthenticatedClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			downloads, err := client.Downloads().Get(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get downloads: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), downloads); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Product", "Latest")

			products := make([]string, 0, len(downloads))
			for product := range downloads {
				products = append(products, product)
			}

			sort.Strings(products)

			for _, product := range products {
				latest := NotAvailable
				if entry, ok := downloads[product].(map[string]interface{}); ok {
					if version, ok := entry["latest"].(string); ok {
						latest = version
					}
				}

				_ = table.Append(product, latest)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
