package defined

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DefaultAPIEndpoint is the production Defined Networking API endpoint.
const DefaultAPIEndpoint = "https://api.defined.net"

// Static errors returned during client construction and use.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrClientClosed   = errors.New("client is closed")
)

// Config represents client configuration for building a defined.Client.
//
// APIKey is the only field most callers need to set. The zero value of every
// other field selects a sensible default: the production API endpoint, a
// pooled HTTP client, a 30 second request timeout, and no logging.
type Config struct {
	// APIEndpoint is the base URL for the API. Defaults to
	// DefaultAPIEndpoint. dnclient.New trims a trailing slash and assumes
	// "https://" when no scheme is present.
	APIEndpoint string

	// APIKey is the bearer token sent in the Authorization header. Leave
	// empty only when exclusively using unauthenticated endpoints such as
	// downloads.
	APIKey string

	// UserAgent overrides the default "defined-go/<version>" User-Agent.
	UserAgent string

	// HTTPClient overrides the underlying HTTP client. When set, the caller
	// owns its transport configuration; Timeout is still applied per call.
	HTTPClient *http.Client

	// Timeout is the default per-request timeout. Defaults to 30 seconds.
	// Individual calls may shorten it further through their context.
	Timeout time.Duration

	// Logger receives debug records when Debug is true. The client never
	// logs unless a logger is provided.
	Logger Logger

	// Debug enables request/response logging through Logger.
	Debug bool
}

// Logger is the logging interface accepted by the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client provides access to every Defined Networking API resource group.
//
// A Client holds a single HTTP session from construction until Close.
// Close is terminal: after it returns, every further call fails with an
// error wrapping ErrClientClosed. A Client is safe for concurrent use.
type Client interface {
	Hosts() HostsClient
	Roles() RolesClient
	Routes() RoutesClient
	Tags() TagsClient
	Networks() NetworksClient
	AuditLogs() AuditLogsClient
	Downloads() DownloadsClient

	// Close releases the underlying connection pool. Calls made after
	// Close fail rather than silently doing nothing.
	Close() error
}

// HostsClient manages hosts, lighthouses, and relays.
type HostsClient interface {
	// Create creates a new host. Requires scope hosts:create.
	Create(ctx context.Context, request *HostCreateRequest) (*Host, error)

	// List returns a page of hosts. Requires scope hosts:list.
	List(ctx context.Context, opts *HostListOptions) (*ListResponse[Host], error)

	// Get returns a single host. Requires scope hosts:read.
	Get(ctx context.Context, hostID string) (*Host, error)

	// Update edits a host. Requires scope hosts:update.
	//
	// Sequence-valued fields (StaticAddresses, Tags, ConfigOverrides) are
	// replaced wholesale: omitting an element removes it server-side.
	Update(ctx context.Context, hostID string, request *HostUpdateRequest) (*Host, error)

	// Delete deletes a host. Requires scope hosts:delete.
	Delete(ctx context.Context, hostID string) error

	// Block blocks a host from the network. Requires scope hosts:block.
	Block(ctx context.Context, hostID string) (*Host, error)

	// Unblock unblocks a host. Requires scope hosts:unblock.
	Unblock(ctx context.Context, hostID string) (*Host, error)

	// DebugCommand sends a debug command to a host. Requires scope
	// hosts:debug. Extra arguments are forwarded verbatim under "args";
	// recognized keys depend on the command (for example "durationSeconds"
	// and "level" for DebugCommandStreamLogs).
	DebugCommand(ctx context.Context, hostID string, command DebugCommand, args map[string]interface{}) (*DebugCommandResult, error)

	// CreateEnrollmentCode creates an enrollment code for an existing
	// host. Requires scope hosts:enroll.
	CreateEnrollmentCode(ctx context.Context, hostID string) (*EnrollmentCode, error)

	// CreateWithEnrollmentCode creates a host and its enrollment code in a
	// single atomic request. Requires scopes hosts:create and hosts:enroll.
	// The API guarantees atomicity only for this single-request form; it is
	// never decomposed into Create followed by CreateEnrollmentCode.
	CreateWithEnrollmentCode(ctx context.Context, request *HostCreateRequest) (*HostAndEnrollmentCode, error)
}

// RolesClient manages roles and their firewall rules.
type RolesClient interface {
	// Create creates a new role. Requires scope roles:create.
	Create(ctx context.Context, request *RoleCreateRequest) (*Role, error)

	// List returns a page of roles. Requires scope roles:list.
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Role], error)

	// Get returns a single role. Requires scope roles:read.
	Get(ctx context.Context, roleID string) (*Role, error)

	// Update edits a role. Requires scope roles:update.
	//
	// FirewallRules is replaced wholesale: omitting a rule removes it
	// server-side.
	Update(ctx context.Context, roleID string, request *RoleUpdateRequest) (*Role, error)

	// Delete deletes a role. Requires scope roles:delete.
	Delete(ctx context.Context, roleID string) error
}

// RoutesClient manages routes.
type RoutesClient interface {
	// Create creates a new route. Requires scope routes:create.
	Create(ctx context.Context, request *RouteCreateRequest) (*Route, error)

	// List returns a page of routes. Requires scope routes:list.
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Route], error)

	// Get returns a single route. Requires scope routes:read.
	Get(ctx context.Context, routeID string) (*Route, error)

	// Update edits a route. Requires scope routes:update.
	//
	// Subscriptions is replaced wholesale: omitting a subscription removes
	// it server-side.
	Update(ctx context.Context, routeID string, request *RouteUpdateRequest) (*Route, error)

	// Delete deletes a route. Requires scope routes:delete.
	Delete(ctx context.Context, routeID string) error
}

// TagsClient manages tags and their config overrides.
//
// Tag names are "key:value" strings and are percent-encoded when used as
// path parameters.
type TagsClient interface {
	// Create creates a new tag. Requires scope tags:create.
	Create(ctx context.Context, request *TagCreateRequest) (*Tag, error)

	// List returns a page of tags. Requires scope tags:list.
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Tag], error)

	// Get returns a single tag by its "key:value" name. Requires scope
	// tags:read.
	Get(ctx context.Context, tag string) (*Tag, error)

	// Update edits a tag. Requires scope tags:update.
	//
	// ConfigOverrides is replaced wholesale: omitting an override removes
	// it server-side.
	Update(ctx context.Context, tag string, request *TagUpdateRequest) (*Tag, error)

	// Delete deletes a tag by its "key:value" name. Requires scope
	// tags:delete.
	Delete(ctx context.Context, tag string) error
}

// NetworksClient manages networks. Networks cannot be deleted through the
// API.
type NetworksClient interface {
	// Create creates a new network. Requires scope networks:create.
	Create(ctx context.Context, request *NetworkCreateRequest) (*Network, error)

	// List returns a page of networks. Requires scope networks:list.
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Network], error)

	// Get returns a single network. Requires scope networks:read.
	Get(ctx context.Context, networkID string) (*Network, error)

	// Update edits a network. Requires scope networks:update.
	Update(ctx context.Context, networkID string, request *NetworkUpdateRequest) (*Network, error)
}

// AuditLogsClient retrieves audit logs.
type AuditLogsClient interface {
	// List returns a page of audit logs. Requires scope audit-logs:list.
	List(ctx context.Context, opts *AuditLogListOptions) (*ListResponse[AuditLog], error)
}

// DownloadsClient retrieves software download links. This endpoint is
// unauthenticated.
type DownloadsClient interface {
	Get(ctx context.Context) (map[string]interface{}, error)
}
