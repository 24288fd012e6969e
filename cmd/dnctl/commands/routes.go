package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rrajpuro/defined-go/internal/constants"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// NewRoutesCommand creates the routes command group
func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routes",
		Aliases: []string{"route"},
		Short:   "Manage routes",
		Long:    "List and manage routes and their host subscriptions",
	}

	cmd.AddCommand(newRoutesListCommand())
	cmd.AddCommand(newRoutesGetCommand())
	cmd.AddCommand(newRoutesCreateCommand())
	cmd.AddCommand(newRoutesUpdateCommand())
	cmd.AddCommand(newRoutesDeleteCommand())

	return cmd
}

// parseSubscription parses a "hostID=cidr[,cidr...]" subscription flag.
func parseSubscription(raw string) (defined.RouteSubscription, error) {
	hostID, cidrs, found := strings.Cut(raw, "=")
	if !found || hostID == "" || cidrs == "" {
		return defined.RouteSubscription{}, fmt.Errorf("invalid subscription %q, expected hostID=cidr[,cidr...]", raw)
	}

	return defined.RouteSubscription{
		HostID: hostID,
		CIDRs:  strings.Split(cidrs, ","),
	}, nil
}

func newRoutesListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			var routes []defined.Route

			if allPages {
				it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.Route], error) {
					return client.Routes().List(ctx, &defined.ListOptions{Cursor: cursor, PageSize: pageSize})
				})

				routes, err = defined.CollectAll(it)
				if err != nil {
					return fmt.Errorf("failed to list routes: %w", err)
				}
			} else {
				page, err := client.Routes().List(ctx, &defined.ListOptions{PageSize: pageSize})
				if err != nil {
					return fmt.Errorf("failed to list routes: %w", err)
				}

				routes = page.Data
			}

			if handled, err := renderEncoded(viper.GetString("output"), routes); handled {
				return err
			}

			if len(routes) == 0 {
				fmt.Println("No routes found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Subscriptions", "Created")

			for _, route := range routes {
				_ = table.Append(route.ID, route.Name,
					fmt.Sprintf("%d", len(route.Subscriptions)),
					route.CreatedAt.Format(constants.TimestampDisplayFormat))
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

func newRoutesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ROUTE_ID",
		Short: "Get route details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			route, err := client.Routes().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get route: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), route); handled {
				return err
			}

			fmt.Printf("Route: %s\n", route.Name)
			fmt.Printf("  ID:      %s\n", route.ID)

			if route.Description != "" {
				fmt.Printf("  Description: %s\n", route.Description)
			}

			fmt.Printf("  Created: %s\n", route.CreatedAt.Format(constants.TimestampDisplayFormat))

			if len(route.Subscriptions) > 0 {
				fmt.Println("  Subscriptions:")

				for _, sub := range route.Subscriptions {
					fmt.Printf("    %s -> %s\n", sub.HostID, strings.Join(sub.CIDRs, ", "))
				}
			}

			return nil
		},
	}
}

func newRoutesCreateCommand() *cobra.Command {
	var (
		name          string
		description   string
		subscriptions []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("route name is required")
			}

			createReq := &defined.RouteCreateRequest{
				Name:        name,
				Description: description,
			}

			for _, raw := range subscriptions {
				sub, err := parseSubscription(raw)
				if err != nil {
					return err
				}

				createReq.Subscriptions = append(createReq.Subscriptions, sub)
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			route, err := client.Routes().Create(context.Background(), createReq)
			if err != nil {
				return fmt.Errorf("failed to create route: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), route); handled {
				return err
			}

			fmt.Printf("Created route %s (%s)\n", route.Name, route.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "route name")
	cmd.Flags().StringVar(&description, "description", "", "route description")
	cmd.Flags().StringArrayVar(&subscriptions, "subscription", nil, "subscription hostID=cidr[,cidr...] (repeatable)")

	return cmd
}

func newRoutesUpdateCommand() *cobra.Command {
	var (
		name          string
		description   string
		subscriptions []string
	)

	cmd := &cobra.Command{
		Use:   "update ROUTE_ID",
		Short: "Update a route",
		Long:  "Update a route. The --subscription set replaces the existing subscriptions entirely.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateReq := &defined.RouteUpdateRequest{}

			if cmd.Flags().Changed("name") {
				updateReq.Name = defined.String(name)
			}

			if cmd.Flags().Changed("description") {
				updateReq.Description = defined.String(description)
			}

			if cmd.Flags().Changed("subscription") {
				subs := make([]defined.RouteSubscription, 0, len(subscriptions))

				for _, raw := range subscriptions {
					sub, err := parseSubscription(raw)
					if err != nil {
						return err
					}

					subs = append(subs, sub)
				}

				updateReq.Subscriptions = &subs
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			route, err := client.Routes().Update(context.Background(), args[0], updateReq)
			if err != nil {
				return fmt.Errorf("failed to update route: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), route); handled {
				return err
			}

			fmt.Printf("Updated route %s\n", route.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new route name")
	cmd.Flags().StringVar(&description, "description", "", "new route description")
	cmd.Flags().StringArrayVar(&subscriptions, "subscription", nil, "replacement subscription set")

	return cmd
}

func newRoutesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ROUTE_ID",
		Short: "Delete a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Routes().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete route: %w", err)
			}

			fmt.Printf("Deleted route %s\n", args[0])

			return nil
		},
	}
}
