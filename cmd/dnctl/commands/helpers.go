// Package commands implements the dnctl command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rrajpuro/defined-go/internal/constants"
	"github.com/rrajpuro/defined-go/pkg/defined"
	"github.com/rrajpuro/defined-go/pkg/dnclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	Yes = "yes"
	No  = "no"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIKeyRequired   = errors.New("API key is required (use --api-key, DNCTL_API_KEY, or 'dnctl config set-api-key')")
	ErrHostNameRequired = errors.New("host name is required")
	ErrNetworkRequired  = errors.New("network ID is required (use --network)")
	ErrRoleNameRequired = errors.New("role name is required")
	ErrTagNameRequired  = errors.New("tag name is required (key:value)")
	ErrUnknownConfigKey = errors.New("unknown config key")
)

// createClient builds a defined.Client from the merged flag, environment,
// and config-file settings.
func createClient() (defined.Client, error) {
	apiKey := viper.GetString("api-key")
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	config := &defined.Config{
		APIEndpoint: viper.GetString("api"),
		APIKey:      apiKey,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	return dnclient.New(config)
}

// createUnauthenticatedClient builds a client without requiring an API key,
// for endpoints such as downloads.
func createUnauthenticatedClient() (defined.Client, error) {
	return dnclient.New(&defined.Config{
		APIEndpoint: viper.GetString("api"),
		APIKey:      viper.GetString("api-key"),
	})
}

// renderEncoded writes v to stdout in the requested structured format and
// reports whether it handled the output. Table rendering stays with the
// caller.
func renderEncoded(output string, v interface{}) (bool, error) {
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(v)
	default:
		return false, nil
	}
}

// formatBool renders a boolean as yes/no for table cells.
func formatBool(v bool) string {
	if v {
		return Yes
	}

	return No
}

// truncateValue caps free-form values so table rows stay readable.
func truncateValue(v string) string {
	if len(v) > constants.ValueDisplayLength {
		return v[:constants.ValueDisplayLength-3] + "..."
	}

	return v
}

// stderrLogger adapts the --verbose flag to the client's Logger interface.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}
