package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rrajpuro/defined-go/internal/constants"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// NewRolesCommand creates the roles command group
func NewRolesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Manage roles",
		Long:    "List and manage roles and their firewall rules",
	}

	cmd.AddCommand(newRolesListCommand())
	cmd.AddCommand(newRolesGetCommand())
	cmd.AddCommand(newRolesCreateCommand())
	cmd.AddCommand(newRolesUpdateCommand())
	cmd.AddCommand(newRolesDeleteCommand())

	return cmd
}

// parseFirewallRule parses a "protocol:from-to[:role-or-tag]" rule flag,
// e.g. "tcp:443", "tcp:8000-9000", "udp:4242:role-abc", "tcp:22:env:prod".
func parseFirewallRule(raw string) (defined.FirewallRule, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return defined.FirewallRule{}, fmt.Errorf("invalid firewall rule %q, expected protocol:port[:source]", raw)
	}

	rule := defined.FirewallRule{Protocol: parts[0]}

	from, to, found := strings.Cut(parts[1], "-")
	if !found {
		to = from
	}

	fromPort, err := strconv.Atoi(from)
	if err != nil {
		return defined.FirewallRule{}, fmt.Errorf("invalid port in firewall rule %q: %w", raw, err)
	}

	toPort, err := strconv.Atoi(to)
	if err != nil {
		return defined.FirewallRule{}, fmt.Errorf("invalid port in firewall rule %q: %w", raw, err)
	}

	rule.PortRange = &defined.PortRange{From: fromPort, To: toPort}

	if len(parts) == 3 {
		if strings.Contains(parts[2], ":") {
			rule.AllowedTags = []string{parts[2]}
		} else {
			rule.AllowedRoleID = parts[2]
		}
	}

	return rule, nil
}

func formatFirewallRules(rules []defined.FirewallRule) string {
	if len(rules) == 0 {
		return NotAvailable
	}

	formatted := make([]string, 0, len(rules))

	for _, rule := range rules {
		entry := rule.Protocol

		if rule.PortRange != nil {
			if rule.PortRange.From == rule.PortRange.To {
				entry += fmt.Sprintf(":%d", rule.PortRange.From)
			} else {
				entry += fmt.Sprintf(":%d-%d", rule.PortRange.From, rule.PortRange.To)
			}
		}

		formatted = append(formatted, entry)
	}

	return strings.Join(formatted, ", ")
}

func newRolesListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			var roles []defined.Role

			if allPages {
				it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.Role], error) {
					return client.Roles().List(ctx, &defined.ListOptions{Cursor: cursor, PageSize: pageSize})
				})

				roles, err = defined.CollectAll(it)
				if err != nil {
					return fmt.Errorf("failed to list roles: %w", err)
				}
			} else {
				page, err := client.Roles().List(ctx, &defined.ListOptions{PageSize: pageSize})
				if err != nil {
					return fmt.Errorf("failed to list roles: %w", err)
				}

				roles = page.Data
			}

			if handled, err := renderEncoded(viper.GetString("output"), roles); handled {
				return err
			}

			if len(roles) == 0 {
				fmt.Println("No roles found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Firewall Rules", "Modified")

			for _, role := range roles {
				_ = table.Append(role.ID, role.Name,
					formatFirewallRules(role.FirewallRules),
					role.ModifiedAt.Format(constants.TimestampDisplayFormat))
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

func newRolesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ROLE_ID",
		Short: "Get role details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			role, err := client.Roles().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get role: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), role); handled {
				return err
			}

			fmt.Printf("Role: %s\n", role.Name)
			fmt.Printf("  ID:          %s\n", role.ID)

			if role.Description != "" {
				fmt.Printf("  Description: %s\n", role.Description)
			}

			fmt.Printf("  Created:     %s\n", role.CreatedAt.Format(constants.TimestampDisplayFormat))
			fmt.Printf("  Modified:    %s\n", role.ModifiedAt.Format(constants.TimestampDisplayFormat))

			if len(role.FirewallRules) > 0 {
				fmt.Println("  Firewall rules:")

				for _, rule := range role.FirewallRules {
					source := "any"
					if rule.AllowedRoleID != "" {
						source = rule.AllowedRoleID
					} else if len(rule.AllowedTags) > 0 {
						source = strings.Join(rule.AllowedTags, ", ")
					}

					fmt.Printf("    %s from %s\n", formatFirewallRules([]defined.FirewallRule{rule}), source)
				}
			}

			return nil
		},
	}
}

func newRolesCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		rules       []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrRoleNameRequired
			}

			createReq := &defined.RoleCreateRequest{
				Name:        name,
				Description: description,
			}

			for _, raw := range rules {
				rule, err := parseFirewallRule(raw)
				if err != nil {
					return err
				}

				createReq.FirewallRules = append(createReq.FirewallRules, rule)
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			role, err := client.Roles().Create(context.Background(), createReq)
			if err != nil {
				return fmt.Errorf("failed to create role: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), role); handled {
				return err
			}

			fmt.Printf("Created role %s (%s)\n", role.Name, role.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "role name")
	cmd.Flags().StringVar(&description, "description", "", "role description")
	cmd.Flags().StringSliceVar(&rules, "rule", nil, "firewall rule protocol:port[:source] (repeatable)")

	return cmd
}

func newRolesUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		rules       []string
	)

	cmd := &cobra.Command{
		Use:   "update ROLE_ID",
		Short: "Update a role",
		Long:  "Update a role. The --rule set replaces the existing firewall rules entirely.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateReq := &defined.RoleUpdateRequest{}

			if cmd.Flags().Changed("name") {
				updateReq.Name = defined.String(name)
			}

			if cmd.Flags().Changed("description") {
				updateReq.Description = defined.String(description)
			}

			if cmd.Flags().Changed("rule") {
				firewallRules := make([]defined.FirewallRule, 0, len(rules))

				for _, raw := range rules {
					rule, err := parseFirewallRule(raw)
					if err != nil {
						return err
					}

					firewallRules = append(firewallRules, rule)
				}

				updateReq.FirewallRules = &firewallRules
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			role, err := client.Roles().Update(context.Background(), args[0], updateReq)
			if err != nil {
				return fmt.Errorf("failed to update role: %w", err)
			}

			if handled, err := renderEncoded(viper.GetString("output"), role); handled {
				return err
			}

			fmt.Printf("Updated role %s\n", role.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new role name")
	cmd.Flags().StringVar(&description, "description", "", "new role description")
	cmd.Flags().StringSliceVar(&rules, "rule", nil, "replacement firewall rule set")

	return cmd
}

func newRolesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ROLE_ID",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Roles().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete role: %w", err)
			}

			fmt.Printf("Deleted role %s\n", args[0])

			return nil
		},
	}
}
