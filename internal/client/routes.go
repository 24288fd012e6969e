package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// RoutesClient implements defined.RoutesClient.
type RoutesClient struct {
	httpClient *http.Client
}

// NewRoutesClient creates a new routes client.
func NewRoutesClient(httpClient *http.Client) *RoutesClient {
	return &RoutesClient{httpClient: httpClient}
}

// Create implements defined.RoutesClient.Create.
func (c *RoutesClient) Create(ctx context.Context, request *defined.RouteCreateRequest) (*defined.Route, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/routes", request)
	if err != nil {
		return nil, fmt.Errorf("creating route: %w", err)
	}

	return unwrapData[defined.Route](resp.Body)
}

// List implements defined.RoutesClient.List.
func (c *RoutesClient) List(ctx context.Context, opts *defined.ListOptions) (*defined.ListResponse[defined.Route], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/routes", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}

	return unwrapList[defined.Route](resp.Body)
}

// Get implements defined.RoutesClient.Get.
func (c *RoutesClient) Get(ctx context.Context, routeID string) (*defined.Route, error) {
	path := "/v1/routes/" + url.PathEscape(routeID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting route: %w", err)
	}

	return unwrapData[defined.Route](resp.Body)
}

// Update implements defined.RoutesClient.Update. Subscriptions is
// full-replace on the server side.
func (c *RoutesClient) Update(ctx context.Context, routeID string, request *defined.RouteUpdateRequest) (*defined.Route, error) {
	path := "/v1/routes/" + url.PathEscape(routeID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating route: %w", err)
	}

	return unwrapData[defined.Route](resp.Body)
}

// Delete implements defined.RoutesClient.Delete.
func (c *RoutesClient) Delete(ctx context.Context, routeID string) error {
	path := "/v1/routes/" + url.PathEscape(routeID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}

	return nil
}
