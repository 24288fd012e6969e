package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// RolesClient implements defined.RolesClient.
type RolesClient struct {
	httpClient *http.Client
}

// NewRolesClient creates a new roles client.
func NewRolesClient(httpClient *http.Client) *RolesClient {
	return &RolesClient{httpClient: httpClient}
}

// Create implements defined.RolesClient.Create.
func (c *RolesClient) Create(ctx context.Context, request *defined.RoleCreateRequest) (*defined.Role, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/roles", request)
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	return unwrapData[defined.Role](resp.Body)
}

// List implements defined.RolesClient.List.
func (c *RolesClient) List(ctx context.Context, opts *defined.ListOptions) (*defined.ListResponse[defined.Role], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/roles", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	return unwrapList[defined.Role](resp.Body)
}

// Get implements defined.RolesClient.Get.
func (c *RolesClient) Get(ctx context.Context, roleID string) (*defined.Role, error) {
	path := "/v1/roles/" + url.PathEscape(roleID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting role: %w", err)
	}

	return unwrapData[defined.Role](resp.Body)
}

// Update implements defined.RolesClient.Update. FirewallRules is
// full-replace on the server side.
func (c *RolesClient) Update(ctx context.Context, roleID string, request *defined.RoleUpdateRequest) (*defined.Role, error) {
	path := "/v1/roles/" + url.PathEscape(roleID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating role: %w", err)
	}

	return unwrapData[defined.Role](resp.Body)
}

// Delete implements defined.RolesClient.Delete.
func (c *RolesClient) Delete(ctx context.Context, roleID string) error {
	path := "/v1/roles/" + url.PathEscape(roleID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	return nil
}
