// Package client implements the defined.Client interface and the
// per-resource clients backing it.
package client

import (
	"encoding/json"
	"fmt"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// Client implements the defined.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string

	// Resource clients
	hosts     defined.HostsClient
	roles     defined.RolesClient
	routes    defined.RoutesClient
	tags      defined.TagsClient
	networks  defined.NetworksClient
	auditLogs defined.AuditLogsClient
	downloads defined.DownloadsClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *defined.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	return httpOpts
}

// New creates a new Defined Networking API client. config.APIEndpoint must
// already be normalized (see pkg/dnclient).
func New(config *defined.Config) *Client {
	httpClient := http.NewClient(config.APIEndpoint, config.APIKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.APIEndpoint,
	}

	client.initializeResourceClients()

	return client
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.hosts = NewHostsClient(c.httpClient)
	c.roles = NewRolesClient(c.httpClient)
	c.routes = NewRoutesClient(c.httpClient)
	c.tags = NewTagsClient(c.httpClient)
	c.networks = NewNetworksClient(c.httpClient)
	c.auditLogs = NewAuditLogsClient(c.httpClient)
	c.downloads = NewDownloadsClient(c.httpClient)
}

// Hosts implements defined.Client.Hosts.
func (c *Client) Hosts() defined.HostsClient {
	return c.hosts
}

// Roles implements defined.Client.Roles.
func (c *Client) Roles() defined.RolesClient {
	return c.roles
}

// Routes implements defined.Client.Routes.
func (c *Client) Routes() defined.RoutesClient {
	return c.routes
}

// Tags implements defined.Client.Tags.
func (c *Client) Tags() defined.TagsClient {
	return c.tags
}

// Networks implements defined.Client.Networks.
func (c *Client) Networks() defined.NetworksClient {
	return c.networks
}

// AuditLogs implements defined.Client.AuditLogs.
func (c *Client) AuditLogs() defined.AuditLogsClient {
	return c.auditLogs
}

// Downloads implements defined.Client.Downloads.
func (c *Client) Downloads() defined.DownloadsClient {
	return c.downloads
}

// Close implements defined.Client.Close.
func (c *Client) Close() error {
	c.httpClient.Close()

	return nil
}

// envelope is the {"data": ...} wrapper around single-resource responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

// unwrapData extracts the nested data object from a successful response
// body. An empty body (204 and friends) yields the zero value rather than
// an error.
func unwrapData[T any](body []byte) (*T, error) {
	var env envelope[T]

	if len(body) == 0 {
		return &env.Data, nil
	}

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}

	return &env.Data, nil
}

// unwrapList parses a full list envelope, pagination metadata included.
func unwrapList[T any](body []byte) (*defined.ListResponse[T], error) {
	var list defined.ListResponse[T]

	if len(body) == 0 {
		return &list, nil
	}

	err := json.Unmarshal(body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return &list, nil
}
