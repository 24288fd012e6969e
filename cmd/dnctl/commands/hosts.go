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

// NewHostsCommand creates the hosts command group
func NewHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hosts",
		Aliases: []string{"host"},
		Short:   "Manage hosts",
		Long:    "List and manage hosts, lighthouses, and relays",
	}

	cmd.AddCommand(newHostsListCommand())
	cmd.AddCommand(newHostsGetCommand())
	cmd.AddCommand(newHostsCreateCommand())
	cmd.AddCommand(newHostsUpdateCommand())
	cmd.AddCommand(newHostsDeleteCommand())
	cmd.AddCommand(newHostsBlockCommand())
	cmd.AddCommand(newHostsUnblockCommand())
	cmd.AddCommand(newHostsEnrollCommand())
	cmd.AddCommand(newHostsDebugCommand())

	return cmd
}

func newHostsListCommand() *cobra.Command {
	var (
		allPages   bool
		pageSize   int
		lighthouse bool
		relay      bool
		blocked    bool
		roleID     string
		platform   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hosts",
		Long:  "List all hosts, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()
			opts := &defined.HostListOptions{
				ListOptions:            defined.ListOptions{PageSize: pageSize},
				FilterRoleID:           roleID,
				FilterMetadataPlatform: platform,
			}

			// Filters distinguish unset from explicitly false.
			if cmd.Flags().Changed("lighthouse") {
				opts.FilterIsLighthouse = defined.Bool(lighthouse)
			}

			if cmd.Flags().Changed("relay") {
				opts.FilterIsRelay = defined.Bool(relay)
			}

			if cmd.Flags().Changed("blocked") {
				opts.FilterIsBlocked = defined.Bool(blocked)
			}

			var (
				hosts       []defined.Host
				hasNextPage bool
			)

			if allPages {
				it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.Host], error) {
					pageOpts := *opts
					pageOpts.Cursor = cursor

					return client.Hosts().List(ctx, &pageOpts)
				})

				hosts, err = defined.CollectAll(it)
				if err != nil {
					return fmt.Errorf("failed to list hosts: %w", err)
				}
			} else {
				page, err := client.Hosts().List(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list hosts: %w", err)
				}

				hosts = page.Data
				hasNextPage = page.Metadata.HasNextPage
			}

			if handled, err := renderEncoded(viper.GetString("output"), hosts); handled {
				return err
			}

			if len(hosts) == 0 {
				fmt.Println("No hosts found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "IP", "Lighthouse", "Relay", "Blocked", "Role", "Last Seen")

			for _, host := range hosts {
				lastSeen := NotAvailable
				if host.Metadata != nil && host.Metadata.LastSeenAt != nil {
					lastSeen = host.Metadata.LastSeenAt.Format(constants.TimestampDisplayFormat)
				}

				role := host.RoleID
				if role == "" {
					role = NotAvailable
				}

				_ = table.Append(host.ID, host.Name, host.IPAddress,
					formatBool(host.IsLighthouse), formatBool(host.IsRelay),
					formatBool(host.IsBlocked), role, lastSeen)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if !allPages && hasNextPage {
				fmt.Println("\nMore hosts available. Use --all to fetch every page.")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&lighthouse, "lighthouse", false, "filter by lighthouse hosts")
	cmd.Flags().BoolVar(&relay, "relay", false, "filter by relay hosts")
	cmd.Flags().BoolVar(&blocked, "blocked", false, "filter by blocked hosts")
	cmd.Flags().StringVar(&roleID, "role", "", "filter by role ID")
	cmd.Flags().StringVar(&platform, "platform", "", "filter by client platform")

	return cmd
}

func newHostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get HOST_ID",
		Short: "Get host details",
		Long:  "Display detailed information about a specific host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			host, err := client.Hosts().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get host: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), host); handled {
				return err
			}

			fmt.Printf("Host: %s\n", host.Name)
			fmt.Printf("  ID:         %s\n", host.ID)
			fmt.Printf("  Network:    %s\n", host.NetworkID)
			fmt.Printf("  IP:         %s\n", host.IPAddress)
			fmt.Printf("  Port:       %d\n", host.ListenPort)
			fmt.Printf("  Lighthouse: %t\n", host.IsLighthouse)
			fmt.Printf("  Relay:      %t\n", host.IsRelay)
			fmt.Printf("  Blocked:    %t\n", host.IsBlocked)
			fmt.Printf("  Created:    %s\n", host.CreatedAt.Format(constants.TimestampDisplayFormat))

			if host.RoleID != "" {
				fmt.Printf("  Role:       %s\n", host.RoleID)
			}

			if len(host.Tags) > 0 {
				fmt.Printf("  Tags:       %v\n", host.Tags)
			}

			if len(host.StaticAddresses) > 0 {
				fmt.Printf("  Static:     %v\n", host.StaticAddresses)
			}

			if host.Metadata != nil {
				fmt.Printf("  Platform:   %s %s\n", host.Metadata.Platform, host.Metadata.Version)
			}

			return nil
		},
	}
}

func newHostsCreateCommand() *cobra.Command {
	var (
		name            string
		networkID       string
		roleID          string
		ipAddress       string
		listenPort      int
		lighthouse      bool
		relay           bool
		staticAddresses []string
		tags            []string
		enroll          bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a host",
		Long:  "Create a new host, lighthouse, or relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrHostNameRequired
			}

			if networkID == "" {
				return ErrNetworkRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			createReq := &defined.HostCreateRequest{
				Name:         name,
				NetworkID:    networkID,
				RoleID:       roleID,
				IPAddress:    ipAddress,
				ListenPort:   listenPort,
				IsLighthouse: lighthouse,
				IsRelay:      relay,
				Tags:         tags,
			}

			if len(staticAddresses) > 0 {
				createReq.StaticAddresses = staticAddresses
			}

			ctx := context.Background()

			if enroll {
				result, err := client.Hosts().CreateWithEnrollmentCode(ctx, createReq)
				if err != nil {
					return fmt.Errorf("failed to create host: %w", err)
				}

				if handled, err := renderEncoded(viper.GetString("output"), result); handled {
					return err
				}

				fmt.Printf("Created host %s (%s)\n", result.Host.Name, result.Host.ID)
				fmt.Printf("Enrollment code: %s\n", result.EnrollmentCode.Code)

				return nil
			}

			host, err := client.Hosts().Create(ctx, createReq)
			if err != nil {
				return fmt.Errorf("failed to create host: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), host); handled {
				return err
			}

			fmt.Printf("Created host %s (%s)\n", host.Name, host.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "host name")
	cmd.Flags().StringVar(&networkID, "network", "", "network ID")
	cmd.Flags().StringVar(&roleID, "role", "", "role ID")
	cmd.Flags().StringVar(&ipAddress, "ip", "", "requested overlay IP address")
	cmd.Flags().IntVar(&listenPort, "listen-port", 0, "UDP listen port (0 for dynamic)")
	cmd.Flags().BoolVar(&lighthouse, "lighthouse", false, "create as lighthouse")
	cmd.Flags().BoolVar(&relay, "relay", false, "create as relay")
	cmd.Flags().StringSliceVar(&staticAddresses, "static-address", nil, "static address (repeatable, host:port)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag in key:value form (repeatable)")
	cmd.Flags().BoolVar(&enroll, "enroll", false, "also create an enrollment code")

	return cmd
}

func newHostsUpdateCommand() *cobra.Command {
	var (
		name            string
		roleID          string
		listenPort      int
		staticAddresses []string
		tags            []string
	)

	cmd := &cobra.Command{
		Use:   "update HOST_ID",
		Short: "Update a host",
		Long:  "Update a host. Repeated fields replace the existing set entirely.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			updateReq := &defined.HostUpdateRequest{}

			if cmd.Flags().Changed("name") {
				updateReq.Name = defined.String(name)
			}

			if cmd.Flags().Changed("role") {
				updateReq.RoleID = defined.String(roleID)
			}

			if cmd.Flags().Changed("listen-port") {
				updateReq.ListenPort = defined.Int(listenPort)
			}

			if cmd.Flags().Changed("static-address") {
				updateReq.StaticAddresses = &staticAddresses
			}

			if cmd.Flags().Changed("tag") {
				updateReq.Tags = &tags
			}

			host, err := client.Hosts().Update(context.Background(), args[0], updateReq)
			if err != nil {
				return fmt.Errorf("failed to update host: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), host); handled {
				return err
			}

			fmt.Printf("Updated host %s\n", host.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new host name")
	cmd.Flags().StringVar(&roleID, "role", "", "new role ID")
	cmd.Flags().IntVar(&listenPort, "listen-port", 0, "new UDP listen port")
	cmd.Flags().StringSliceVar(&staticAddresses, "static-address", nil, "replacement static address set")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tag set")

	return cmd
}

func newHostsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOST_ID",
		Short: "Delete a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Hosts().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete host: %w", err)
			}

			fmt.Printf("Deleted host %s\n", args[0])

			return nil
		},
	}
}

func newHostsBlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "block HOST_ID",
		Short: "Block a host",
		Long:  "Block a host from connecting to the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			host, err := client.Hosts().Block(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to block host: %w", err)
			}

			fmt.Printf("Blocked host %s\n", host.ID)

			return nil
		},
	}
}

func newHostsUnblockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unblock HOST_ID",
		Short: "Unblock a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			host, err := client.Hosts().Unblock(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to unblock host: %w", err)
			}

			fmt.Printf("Unblocked host %s\n", host.ID)

			return nil
		},
	}
}

func newHostsEnrollCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll HOST_ID",
		Short: "Create an enrollment code",
		Long:  "Create a one-time enrollment code for an existing host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			code, err := client.Hosts().CreateEnrollmentCode(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create enrollment code: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), code); handled {
				return err
			}

			fmt.Printf("Enrollment code: %s\n", code.Code)

			return nil
		},
	}
}

func newHostsDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug HOST_ID COMMAND",
		Short: "Run a debug command on a host",
		Long: `Run a remote debug command on an online host.

Available commands: stream-logs, create-tunnel, print-tunnel, print-cert,
query-lighthouse, debug-stack`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugCommands := map[string]defined.DebugCommand{
				"stream-logs":      defined.DebugCommandStreamLogs,
				"create-tunnel":    defined.DebugCommandCreateTunnel,
				"print-tunnel":     defined.DebugCommandPrintTunnel,
				"print-cert":       defined.DebugCommandPrintCert,
				"query-lighthouse": defined.DebugCommandQueryLighthouse,
				"debug-stack":      defined.DebugCommandDebugStack,
			}

			command, ok := debugCommands[args[1]]
			if !ok {
				return fmt.Errorf("unknown debug command %q", args[1])
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.Hosts().DebugCommand(context.Background(), args[0], command, nil)
			if err != nil {
				return fmt.Errorf("failed to run debug command: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), result); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for key, value := range *result {
				_ = table.Append(key, truncateValue(fmt.Sprintf("%v", value)))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
