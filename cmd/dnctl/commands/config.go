package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rrajpuro/defined-go/internal/constants"
)

// configKeys are the settings persisted in the config file.
var configKeys = []string{"api", "api-key", "output"}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dnctl configuration",
		Long:  "View and modify the persisted dnctl configuration",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetAPIKeyCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := map[string]string{}
			for _, key := range configKeys {
				settings[key] = viper.GetString(key)
			}

			// Never print the key itself.
			if settings["api-key"] != "" {
				settings["api-key"] = "***"
			}

			if handled, err := renderEncoded(viper.GetString("output"), settings); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for _, key := range configKeys {
				value := settings[key]
				if value == "" {
					value = NotAvailable
				}

				_ = table.Append(key, value)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			known := false

			for _, k := range configKeys {
				if k == key {
					known = true

					break
				}
			}

			if !known {
				return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
			}

			viper.Set(key, value)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigSetAPIKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-api-key",
		Short: "Set the API key",
		Long:  "Prompt for an API key without echoing it and persist it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("API key: ")

			keyBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}

			fmt.Println()

			apiKey := strings.TrimSpace(string(keyBytes))
			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			viper.Set("api-key", apiKey)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Println("API key saved")

			return nil
		},
	}
}

// saveConfig persists the known settings to the active config file, or to
// ~/.dnctl/config.yml when none is in use yet.
func saveConfig() error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".dnctl")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		path = filepath.Join(configDir, "config.yml")
	}

	settings := map[string]string{}

	for _, key := range configKeys {
		if value := viper.GetString(key); value != "" {
			settings[key] = value
		}
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
