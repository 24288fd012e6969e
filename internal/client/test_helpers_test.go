package client

import (
	internalhttp "github.com/rrajpuro/defined-go/internal/http"
)

// NewTestClient creates a client pointed at a test server.
func NewTestClient(baseURL string) *Client {
	client := &Client{
		httpClient: internalhttp.NewClient(baseURL, "dnkey-test"),
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}
