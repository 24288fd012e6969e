package client

import (
	"context"
	"fmt"

	"github.com/rrajpuro/defined-go/internal/http"
)

// DownloadsClient implements defined.DownloadsClient. The downloads
// endpoint is unauthenticated; the bearer header is still sent when an API
// key is configured and the server ignores it.
type DownloadsClient struct {
	httpClient *http.Client
}

// NewDownloadsClient creates a new downloads client.
func NewDownloadsClient(httpClient *http.Client) *DownloadsClient {
	return &DownloadsClient{httpClient: httpClient}
}

// Get implements defined.DownloadsClient.Get.
func (c *DownloadsClient) Get(ctx context.Context) (map[string]interface{}, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/downloads", nil)
	if err != nil {
		return nil, fmt.Errorf("getting downloads: %w", err)
	}

	data, err := unwrapData[map[string]interface{}](resp.Body)
	if err != nil {
		return nil, err
	}

	return *data, nil
}
