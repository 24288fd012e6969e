package defined

import (
	"net/url"
	"strconv"
)

// DefaultPageSize is the page size used when ListOptions.PageSize is zero.
const DefaultPageSize = 25

// ListOptions are the pagination parameters shared by every list
// operation.
type ListOptions struct {
	// IncludeCounts asks the server to compute Metadata.TotalCount.
	IncludeCounts bool

	// Cursor is the opaque pagination token from a previous page's
	// Metadata.NextCursor. Empty requests the first page.
	Cursor string

	// PageSize is the number of entries per page. Zero means
	// DefaultPageSize.
	PageSize int
}

// ToValues renders the options as wire query parameters.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		o = &ListOptions{}
	}

	pageSize := o.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	values.Set("includeCounts", strconv.FormatBool(o.IncludeCounts))
	values.Set("pageSize", strconv.Itoa(pageSize))

	if o.Cursor != "" {
		values.Set("cursor", o.Cursor)
	}

	return values
}

// HostListOptions are the pagination and filter parameters for
// HostsClient.List. Unset filters are omitted from the query string
// entirely; the server distinguishes absent from explicitly false.
type HostListOptions struct {
	ListOptions

	FilterEndpointOIDCUserID      string
	FilterIsBlocked               *bool
	FilterIsLighthouse            *bool
	FilterIsRelay                 *bool
	FilterMetadataLastSeenAt      string
	FilterMetadataPlatform        string
	FilterMetadataUpdateAvailable *bool
	FilterRoleID                  string
}

// ToValues renders the options as wire query parameters, translating each
// filter to its dotted wire name.
func (o *HostListOptions) ToValues() url.Values {
	if o == nil {
		o = &HostListOptions{}
	}

	values := o.ListOptions.ToValues()

	setString(values, "filter.endpointOIDCUserID", o.FilterEndpointOIDCUserID)
	setBool(values, "filter.isBlocked", o.FilterIsBlocked)
	setBool(values, "filter.isLighthouse", o.FilterIsLighthouse)
	setBool(values, "filter.isRelay", o.FilterIsRelay)
	setString(values, "filter.metadata.lastSeenAt", o.FilterMetadataLastSeenAt)
	setString(values, "filter.metadata.platform", o.FilterMetadataPlatform)
	setBool(values, "filter.metadata.updateAvailable", o.FilterMetadataUpdateAvailable)
	setString(values, "filter.roleID", o.FilterRoleID)

	return values
}

// AuditLogTargetType values accepted by AuditLogListOptions.
const (
	AuditLogTargetAPIKey       = "apiKey"
	AuditLogTargetHost         = "host"
	AuditLogTargetNetwork      = "network"
	AuditLogTargetRole         = "role"
	AuditLogTargetUser         = "user"
	AuditLogTargetCA           = "ca"
	AuditLogTargetOIDCProvider = "oidcProvider"
)

// AuditLogListOptions are the pagination and filter parameters for
// AuditLogsClient.List.
type AuditLogListOptions struct {
	ListOptions

	FilterTargetID   string
	FilterTargetType string
}

// ToValues renders the options as wire query parameters.
func (o *AuditLogListOptions) ToValues() url.Values {
	if o == nil {
		o = &AuditLogListOptions{}
	}

	values := o.ListOptions.ToValues()

	setString(values, "filter.targetID", o.FilterTargetID)
	setString(values, "filter.targetType", o.FilterTargetType)

	return values
}

func setString(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setBool(values url.Values, key string, value *bool) {
	if value != nil {
		values.Set(key, strconv.FormatBool(*value))
	}
}

// Bool returns a pointer to v, for filling filter fields inline.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for filling update request fields inline.
func String(v string) *string { return &v }

// Int returns a pointer to v, for filling update request fields inline.
func Int(v int) *int { return &v }
