// Package constants defines shared constants used across the client.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Pagination.
const (
	// DefaultPageSize is the default number of entries per list page.
	DefaultPageSize = 25
)

// Display formatting.
const (
	// TimestampDisplayFormat is the timestamp layout used in table output.
	TimestampDisplayFormat = "2006-01-02 15:04:05"

	// ValueDisplayLength caps free-form values in table cells.
	ValueDisplayLength = 40
)
