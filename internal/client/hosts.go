package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// HostsClient implements defined.HostsClient.
type HostsClient struct {
	httpClient *http.Client
}

// NewHostsClient creates a new hosts client.
func NewHostsClient(httpClient *http.Client) *HostsClient {
	return &HostsClient{httpClient: httpClient}
}

// Create implements defined.HostsClient.Create.
func (c *HostsClient) Create(ctx context.Context, request *defined.HostCreateRequest) (*defined.Host, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/hosts", request)
	if err != nil {
		return nil, fmt.Errorf("creating host: %w", err)
	}

	return unwrapData[defined.Host](resp.Body)
}

// List implements defined.HostsClient.List.
func (c *HostsClient) List(ctx context.Context, opts *defined.HostListOptions) (*defined.ListResponse[defined.Host], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/hosts", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing hosts: %w", err)
	}

	return unwrapList[defined.Host](resp.Body)
}

// Get implements defined.HostsClient.Get.
func (c *HostsClient) Get(ctx context.Context, hostID string) (*defined.Host, error) {
	path := "/v1/hosts/" + url.PathEscape(hostID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting host: %w", err)
	}

	return unwrapData[defined.Host](resp.Body)
}

// Update implements defined.HostsClient.Update. Host updates use the v2
// endpoint; every sibling operation stays on v1.
func (c *HostsClient) Update(ctx context.Context, hostID string, request *defined.HostUpdateRequest) (*defined.Host, error) {
	path := "/v2/hosts/" + url.PathEscape(hostID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating host: %w", err)
	}

	return unwrapData[defined.Host](resp.Body)
}

// Delete implements defined.HostsClient.Delete.
func (c *HostsClient) Delete(ctx context.Context, hostID string) error {
	path := "/v1/hosts/" + url.PathEscape(hostID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting host: %w", err)
	}

	return nil
}

// Block implements defined.HostsClient.Block.
func (c *HostsClient) Block(ctx context.Context, hostID string) (*defined.Host, error) {
	path := "/v1/hosts/" + url.PathEscape(hostID) + "/block"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("blocking host: %w", err)
	}

	return unwrapData[defined.Host](resp.Body)
}

// Unblock implements defined.HostsClient.Unblock.
func (c *HostsClient) Unblock(ctx context.Context, hostID string) (*defined.Host, error) {
	path := "/v1/hosts/" + url.PathEscape(hostID) + "/unblock"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("unblocking host: %w", err)
	}

	return unwrapData[defined.Host](resp.Body)
}

// debugCommandRequest is the wire body for host debug commands.
type debugCommandRequest struct {
	Command defined.DebugCommand   `json:"command"`
	Args    map[string]interface{} `json:"args,omitempty"`
}

// DebugCommand implements defined.HostsClient.DebugCommand.
func (c *HostsClient) DebugCommand(ctx context.Context, hostID string, command defined.DebugCommand, args map[string]interface{}) (*defined.DebugCommandResult, error) {
	path := "/v1/hosts/" + url.PathEscape(hostID) + "/command"

	body := &debugCommandRequest{Command: command}
	if len(args) > 0 {
		body.Args = args
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("sending debug command: %w", err)
	}

	return unwrapData[defined.DebugCommandResult](resp.Body)
}

// CreateEnrollmentCode implements defined.HostsClient.CreateEnrollmentCode.
func (c *HostsClient) CreateEnrollmentCode(ctx context.Context, hostID string) (*defined.EnrollmentCode, error) {
	path := "/v1/hosts/" + url.PathEscape(hostID) + "/enrollment-code"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating enrollment code: %w", err)
	}

	return unwrapData[defined.EnrollmentCode](resp.Body)
}

// CreateWithEnrollmentCode implements
// defined.HostsClient.CreateWithEnrollmentCode. The host and its
// enrollment code are created by one request; the API guarantees
// atomicity only for this form.
func (c *HostsClient) CreateWithEnrollmentCode(ctx context.Context, request *defined.HostCreateRequest) (*defined.HostAndEnrollmentCode, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/host-and-enrollment-code", request)
	if err != nil {
		return nil, fmt.Errorf("creating host with enrollment code: %w", err)
	}

	return unwrapData[defined.HostAndEnrollmentCode](resp.Body)
}
