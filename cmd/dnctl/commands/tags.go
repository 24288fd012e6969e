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

// NewTagsCommand creates the tags command group
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
		Long:    "List and manage key:value tags and their config overrides",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsGetCommand())
	cmd.AddCommand(newTagsCreateCommand())
	cmd.AddCommand(newTagsUpdateCommand())
	cmd.AddCommand(newTagsDeleteCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			var tags []defined.Tag

			if allPages {
				it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.Tag], error) {
					return client.Tags().List(ctx, &defined.ListOptions{Cursor: cursor, PageSize: pageSize})
				})

				tags, err = defined.CollectAll(it)
				if err != nil {
					return fmt.Errorf("failed to list tags: %w", err)
				}
			} else {
				page, err := client.Tags().List(ctx, &defined.ListOptions{PageSize: pageSize})
				if err != nil {
					return fmt.Errorf("failed to list tags: %w", err)
				}

				tags = page.Data
			}

			if handled, err := renderEncoded(viper.GetString("output"), tags); handled {
				return err
			}

			if len(tags) == 0 {
				fmt.Println("No tags found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Description", "Hosts", "Overrides", "Created")

			for _, tag := range tags {
				description := tag.Description
				if description == "" {
					description = NotAvailable
				}

				_ = table.Append(tag.Name, truncateValue(description),
					fmt.Sprintf("%d", tag.HostCount),
					fmt.Sprintf("%d", len(tag.ConfigOverrides)),
					tag.CreatedAt.Format(constants.TimestampDisplayFormat))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")

	return cmd
}

func newTagsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TAG",
		Short: "Get tag details",
		Long:  "Display detailed information about a tag, addressed by its key:value name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tag, err := client.Tags().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get tag: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), tag); handled {
				return err
			}

			fmt.Printf("Tag: %s\n", tag.Name)

			if tag.Description != "" {
				fmt.Printf("  Description: %s\n", tag.Description)
			}

			fmt.Printf("  Hosts:       %d\n", tag.HostCount)
			fmt.Printf("  Created:     %s\n", tag.CreatedAt.Format(constants.TimestampDisplayFormat))

			if len(tag.ConfigOverrides) > 0 {
				fmt.Println("  Config overrides:")

				for _, override := range tag.ConfigOverrides {
					fmt.Printf("    %s = %v\n", override.Key, override.Value)
				}
			}

			return nil
		},
	}
}

func newTagsCreateCommand() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrTagNameRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tag, err := client.Tags().Create(context.Background(), &defined.TagCreateRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), tag); handled {
				return err
			}

			fmt.Printf("Created tag %s\n", tag.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "tag name (key:value)")
	cmd.Flags().StringVar(&description, "description", "", "tag description")

	return cmd
}

func newTagsUpdateCommand() *cobra.Command {
	var (
		description string
		before      string
		after       string
	)

	cmd := &cobra.Command{
		Use:   "update TAG",
		Short: "Update a tag",
		Long:  "Update a tag's description or its priority position relative to another tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateReq := &defined.TagUpdateRequest{
				Before: before,
				After:  after,
			}

			if cmd.Flags().Changed("description") {
				updateReq.Description = defined.String(description)
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tag, err := client.Tags().Update(context.Background(), args[0], updateReq)
			if err != nil {
				return fmt.Errorf("failed to update tag: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), tag); handled {
				return err
			}

			fmt.Printf("Updated tag %s\n", tag.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new tag description")
	cmd.Flags().StringVar(&before, "before", "", "position this tag before another tag")
	cmd.Flags().StringVar(&after, "after", "", "position this tag after another tag")

	return cmd
}

func newTagsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TAG",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Tags().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete tag: %w", err)
			}

			fmt.Printf("Deleted tag %s\n", args[0])

			return nil
		},
	}
}
