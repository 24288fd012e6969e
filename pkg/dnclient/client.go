package dnclient

import (
	"strings"

	"github.com/rrajpuro/defined-go/internal/client"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// New creates a new Defined Networking API client.
func New(config *defined.Config) (defined.Client, error) {
	if config == nil {
		return nil, defined.ErrConfigRequired
	}

	// Normalize API endpoint
	apiEndpoint := config.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = defined.DefaultAPIEndpoint
	}

	apiEndpoint = strings.TrimSuffix(apiEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	return client.New(config), nil
}

// NewWithAPIKey creates a client for the production API with the given
// API key.
func NewWithAPIKey(apiKey string) (defined.Client, error) {
	return New(&defined.Config{APIKey: apiKey})
}
