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

// NewNetworksCommand creates the networks command group
func NewNetworksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Aliases: []string{"network"},
		Short:   "Manage networks",
		Long:    "List and manage networks. Networks cannot be deleted through the API.",
	}

	cmd.AddCommand(newNetworksListCommand())
	cmd.AddCommand(newNetworksGetCommand())
	cmd.AddCommand(newNetworksCreateCommand())
	cmd.AddCommand(newNetworksUpdateCommand())

	return cmd
}

func newNetworksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			page, err := client.Networks().List(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to list networks: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), page.Data); handled {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println("No networks found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "CIDR", "Created")

			for _, network := range page.Data {
				_ = table.Append(network.ID, network.Name, network.CIDR,
					network.CreatedAt.Format(constants.TimestampDisplayFormat))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newNetworksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NETWORK_ID",
		Short: "Get network details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			network, err := client.Networks().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get network: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), network); handled {
				return err
			}

			fmt.Printf("Network: %s\n", network.Name)
			fmt.Printf("  ID:      %s\n", network.ID)
			fmt.Printf("  CIDR:    %s\n", network.CIDR)
			fmt.Printf("  Created: %s\n", network.CreatedAt.Format(constants.TimestampDisplayFormat))

			return nil
		},
	}
}

func newNetworksCreateCommand() *cobra.Command {
	var (
		name string
		cidr string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a network",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("network name is required")
			}

			if cidr == "" {
				return fmt.Errorf("network CIDR is required")
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			network, err := client.Networks().Create(context.Background(), &defined.NetworkCreateRequest{
				Name: name,
				CIDR: cidr,
			})
			if err != nil {
				return fmt.Errorf("failed to create network: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), network); handled {
				return err
			}

			fmt.Printf("Created network %s (%s)\n", network.Name, network.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "network name")
	cmd.Flags().StringVar(&cidr, "cidr", "", "network CIDR, e.g. 100.100.0.0/24")

	return cmd
}

func newNetworksUpdateCommand() *cobra.Command {
	var (
		name string
		cidr string
	)

	cmd := &cobra.Command{
		Use:   "update NETWORK_ID",
		Short: "Update a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateReq := &defined.NetworkUpdateRequest{}

			if cmd.Flags().Changed("name") {
				updateReq.Name = defined.String(name)
			}

			if cmd.Flags().Changed("cidr") {
				updateReq.CIDR = defined.String(cidr)
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			network, err := client.Networks().Update(context.Background(), args[0], updateReq)
			if err != nil {
				return fmt.Errorf("failed to update network: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), network); handled {
				return err
			}

			fmt.Printf("Updated network %s\n", network.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new network name")
	cmd.Flags().StringVar(&cidr, "cidr", "", "new network CIDR")

	return cmd
}
