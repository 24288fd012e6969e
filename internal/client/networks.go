package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// NetworksClient implements defined.NetworksClient. The API exposes no
// delete endpoint for networks.
type NetworksClient struct {
	httpClient *http.Client
}

// NewNetworksClient creates a new networks client.
func NewNetworksClient(httpClient *http.Client) *NetworksClient {
	return &NetworksClient{httpClient: httpClient}
}

// Create implements defined.NetworksClient.Create.
func (c *NetworksClient) Create(ctx context.Context, request *defined.NetworkCreateRequest) (*defined.Network, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/networks", request)
	if err != nil {
		return nil, fmt.Errorf("creating network: %w", err)
	}

	return unwrapData[defined.Network](resp.Body)
}

// List implements defined.NetworksClient.List.
func (c *NetworksClient) List(ctx context.Context, opts *defined.ListOptions) (*defined.ListResponse[defined.Network], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/networks", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}

	return unwrapList[defined.Network](resp.Body)
}

// Get implements defined.NetworksClient.Get.
func (c *NetworksClient) Get(ctx context.Context, networkID string) (*defined.Network, error) {
	path := "/v1/networks/" + url.PathEscape(networkID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting network: %w", err)
	}

	return unwrapData[defined.Network](resp.Body)
}

// Update implements defined.NetworksClient.Update.
func (c *NetworksClient) Update(ctx context.Context, networkID string, request *defined.NetworkUpdateRequest) (*defined.Network, error) {
	path := "/v1/networks/" + url.PathEscape(networkID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating network: %w", err)
	}

	return unwrapData[defined.Network](resp.Body)
}
