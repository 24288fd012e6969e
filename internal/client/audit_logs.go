package client

import (
	"context"
	"fmt"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// AuditLogsClient implements defined.AuditLogsClient.
type AuditLogsClient struct {
	httpClient *http.Client
}

// NewAuditLogsClient creates a new audit logs client.
func NewAuditLogsClient(httpClient *http.Client) *AuditLogsClient {
	return &AuditLogsClient{httpClient: httpClient}
}

// List implements defined.AuditLogsClient.List.
func (c *AuditLogsClient) List(ctx context.Context, opts *defined.AuditLogListOptions) (*defined.ListResponse[defined.AuditLog], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/audit-logs", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}

	return unwrapList[defined.AuditLog](resp.Body)
}
