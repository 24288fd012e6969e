package defined

import "time"

// Host represents a host, lighthouse, or relay in a network.
type Host struct {
	ID              string           `json:"id"                        yaml:"id"`
	NetworkID       string           `json:"networkID"                 yaml:"networkID"`
	RoleID          string           `json:"roleID,omitempty"          yaml:"roleID,omitempty"`
	Name            string           `json:"name"                      yaml:"name"`
	IPAddress       string           `json:"ipAddress,omitempty"       yaml:"ipAddress,omitempty"`
	StaticAddresses []string         `json:"staticAddresses,omitempty" yaml:"staticAddresses,omitempty"`
	ListenPort      int              `json:"listenPort"                yaml:"listenPort"`
	IsLighthouse    bool             `json:"isLighthouse"              yaml:"isLighthouse"`
	IsRelay         bool             `json:"isRelay"                   yaml:"isRelay"`
	IsBlocked       bool             `json:"isBlocked"                 yaml:"isBlocked"`
	Tags            []string         `json:"tags,omitempty"            yaml:"tags,omitempty"`
	ConfigOverrides []ConfigOverride `json:"configOverrides,omitempty" yaml:"configOverrides,omitempty"`
	Metadata        *HostMetadata    `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"                 yaml:"createdAt"`
}

// HostMetadata carries server-reported host state.
type HostMetadata struct {
	LastSeenAt      *time.Time `json:"lastSeenAt,omitempty" yaml:"lastSeenAt,omitempty"`
	Platform        string     `json:"platform,omitempty"   yaml:"platform,omitempty"`
	Version         string     `json:"version,omitempty"    yaml:"version,omitempty"`
	UpdateAvailable bool       `json:"updateAvailable"      yaml:"updateAvailable"`
}

// ConfigOverride is a single mobile or dnclient config override entry.
type ConfigOverride struct {
	Key   string      `json:"key"   yaml:"key"`
	Value interface{} `json:"value" yaml:"value"`
}

// EnrollmentCode is a one-time code used to enroll a host.
type EnrollmentCode struct {
	Code            string `json:"code"            yaml:"code"`
	LifetimeSeconds int    `json:"lifetimeSeconds" yaml:"lifetimeSeconds"`
}

// HostAndEnrollmentCode is the result of the atomic
// host-and-enrollment-code operation.
type HostAndEnrollmentCode struct {
	Host           Host           `json:"host"           yaml:"host"`
	EnrollmentCode EnrollmentCode `json:"enrollmentCode" yaml:"enrollmentCode"`
}

// Role represents a role and its firewall rules.
type Role struct {
	ID            string         `json:"id"                      yaml:"id"`
	Name          string         `json:"name"                    yaml:"name"`
	Description   string         `json:"description,omitempty"   yaml:"description,omitempty"`
	FirewallRules []FirewallRule `json:"firewallRules,omitempty" yaml:"firewallRules,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"               yaml:"createdAt"`
	ModifiedAt    time.Time      `json:"modifiedAt"              yaml:"modifiedAt"`
}

// FirewallRule is a single inbound firewall rule attached to a role.
type FirewallRule struct {
	Protocol      string     `json:"protocol"                yaml:"protocol"`
	Description   string     `json:"description,omitempty"   yaml:"description,omitempty"`
	AllowedRoleID string     `json:"allowedRoleID,omitempty" yaml:"allowedRoleID,omitempty"`
	AllowedTags   []string   `json:"allowedTags,omitempty"   yaml:"allowedTags,omitempty"`
	PortRange     *PortRange `json:"portRange,omitempty"     yaml:"portRange,omitempty"`
}

// PortRange is an inclusive port range.
type PortRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to"   yaml:"to"`
}

// Route represents a route and its subscriptions.
type Route struct {
	ID            string              `json:"id"                      yaml:"id"`
	Name          string              `json:"name"                    yaml:"name"`
	Description   string              `json:"description,omitempty"   yaml:"description,omitempty"`
	Subscriptions []RouteSubscription `json:"subscriptions,omitempty" yaml:"subscriptions,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"               yaml:"createdAt"`
}

// RouteSubscription binds a host to a set of routed CIDRs.
type RouteSubscription struct {
	HostID string   `json:"hostID" yaml:"hostID"`
	CIDRs  []string `json:"cidrs"  yaml:"cidrs"`
}

// Tag represents a tag in "key:value" form and its config overrides.
type Tag struct {
	Name            string           `json:"name"                      yaml:"name"`
	Description     string           `json:"description,omitempty"     yaml:"description,omitempty"`
	ConfigOverrides []ConfigOverride `json:"configOverrides,omitempty" yaml:"configOverrides,omitempty"`
	HostCount       int              `json:"hostCount"                 yaml:"hostCount"`
	CreatedAt       time.Time        `json:"createdAt"                 yaml:"createdAt"`
}

// Network represents a network.
type Network struct {
	ID        string    `json:"id"        yaml:"id"`
	Name      string    `json:"name"      yaml:"name"`
	CIDR      string    `json:"cidr"      yaml:"cidr"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// AuditLog is a single audit log entry.
type AuditLog struct {
	ID         string                 `json:"id"                   yaml:"id"`
	Action     string                 `json:"action"               yaml:"action"`
	ActorID    string                 `json:"actorID,omitempty"    yaml:"actorID,omitempty"`
	ActorType  string                 `json:"actorType,omitempty"  yaml:"actorType,omitempty"`
	TargetID   string                 `json:"targetID,omitempty"   yaml:"targetID,omitempty"`
	TargetType string                 `json:"targetType,omitempty" yaml:"targetType,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"    yaml:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"            yaml:"createdAt"`
}

// ListMetadata is the pagination metadata carried by list responses.
type ListMetadata struct {
	NextCursor  string `json:"nextCursor,omitempty" yaml:"nextCursor,omitempty"`
	HasNextPage bool   `json:"hasNextPage"          yaml:"hasNextPage"`
	// TotalCount is populated only when the list was requested with
	// IncludeCounts.
	TotalCount int64 `json:"totalCount,omitempty" yaml:"totalCount,omitempty"`
}

// ListResponse is the full envelope returned by list operations, including
// pagination metadata. Page through results by resubmitting
// Metadata.NextCursor while Metadata.HasNextPage is true.
type ListResponse[T any] struct {
	Data     []T          `json:"data"     yaml:"data"`
	Metadata ListMetadata `json:"metadata" yaml:"metadata"`
}

// HostCreateRequest is the body for HostsClient.Create and
// HostsClient.CreateWithEnrollmentCode.
//
// Name and NetworkID are required. ListenPort, IsLighthouse, and IsRelay
// are always sent, including their zero values; the remaining optional
// fields are omitted from the wire body when unset.
type HostCreateRequest struct {
	Name            string           `json:"name"`
	NetworkID       string           `json:"networkID"`
	RoleID          string           `json:"roleID,omitempty"`
	IPAddress       string           `json:"ipAddress,omitempty"`
	StaticAddresses []string         `json:"staticAddresses,omitempty"`
	ListenPort      int              `json:"listenPort"`
	IsLighthouse    bool             `json:"isLighthouse"`
	IsRelay         bool             `json:"isRelay"`
	Tags            []string         `json:"tags,omitempty"`
	ConfigOverrides []ConfigOverride `json:"configOverrides,omitempty"`
}

// HostUpdateRequest is the body for HostsClient.Update. Nil fields are
// omitted from the wire body entirely, so the server leaves them untouched.
//
// StaticAddresses, Tags, and ConfigOverrides are full-replace: sending a
// sequence replaces the server-side sequence wholesale, and an element left
// out is removed. Callers who want to keep existing elements must resend
// them; the client never diffs.
type HostUpdateRequest struct {
	Name            *string           `json:"name,omitempty"`
	RoleID          *string           `json:"roleID,omitempty"`
	StaticAddresses *[]string         `json:"staticAddresses,omitempty"`
	ListenPort      *int              `json:"listenPort,omitempty"`
	Tags            *[]string         `json:"tags,omitempty"`
	ConfigOverrides *[]ConfigOverride `json:"configOverrides,omitempty"`
}

// DebugCommand identifies a host debug command.
type DebugCommand string

// Debug commands accepted by HostsClient.DebugCommand.
const (
	DebugCommandStreamLogs      DebugCommand = "StreamLogs"
	DebugCommandCreateTunnel    DebugCommand = "CreateTunnel"
	DebugCommandPrintTunnel     DebugCommand = "PrintTunnel"
	DebugCommandPrintCert       DebugCommand = "PrintCert"
	DebugCommandQueryLighthouse DebugCommand = "QueryLighthouse"
	DebugCommandDebugStack      DebugCommand = "DebugStack"
)

// DebugCommandResult is the opaque result of a host debug command. Its
// shape depends on the command issued.
type DebugCommandResult map[string]interface{}

// RoleCreateRequest is the body for RolesClient.Create.
type RoleCreateRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	FirewallRules []FirewallRule `json:"firewallRules,omitempty"`
}

// RoleUpdateRequest is the body for RolesClient.Update. Nil fields are
// omitted from the wire body entirely.
//
// FirewallRules is full-replace: a rule left out of the sequence is removed
// server-side.
type RoleUpdateRequest struct {
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	FirewallRules *[]FirewallRule `json:"firewallRules,omitempty"`
}

// RouteCreateRequest is the body for RoutesClient.Create.
type RouteCreateRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Subscriptions []RouteSubscription `json:"subscriptions,omitempty"`
}

// RouteUpdateRequest is the body for RoutesClient.Update. Nil fields are
// omitted from the wire body entirely.
//
// Subscriptions is full-replace: a subscription left out of the sequence is
// removed server-side.
type RouteUpdateRequest struct {
	Name          *string              `json:"name,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Subscriptions *[]RouteSubscription `json:"subscriptions,omitempty"`
}

// TagCreateRequest is the body for TagsClient.Create. Name is a "key:value"
// string.
type TagCreateRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	ConfigOverrides []ConfigOverride `json:"configOverrides,omitempty"`
}

// TagUpdateRequest is the body for TagsClient.Update. Nil fields are
// omitted from the wire body entirely.
//
// ConfigOverrides is full-replace: an override left out of the sequence is
// removed server-side. Before and After position the tag relative to
// another tag for priority ordering.
type TagUpdateRequest struct {
	Description     *string           `json:"description,omitempty"`
	ConfigOverrides *[]ConfigOverride `json:"configOverrides,omitempty"`
	Before          string            `json:"before,omitempty"`
	After           string            `json:"after,omitempty"`
}

// NetworkCreateRequest is the body for NetworksClient.Create. CIDR uses
// the form "100.100.0.0/24".
type NetworkCreateRequest struct {
	Name string `json:"name"`
	CIDR string `json:"cidr"`
}

// NetworkUpdateRequest is the body for NetworksClient.Update. Nil fields
// are omitted from the wire body entirely.
type NetworkUpdateRequest struct {
	Name *string `json:"name,omitempty"`
	CIDR *string `json:"cidr,omitempty"`
}
