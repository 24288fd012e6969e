package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajpuro/defined-go/pkg/defined"
)

func TestNewRolesCommand(t *testing.T) {
	cmd := NewRolesCommand()
	assert.Equal(t, "roles", cmd.Use)
	assert.Len(t, cmd.Commands(), 5)
}

func TestParseFirewallRule(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected defined.FirewallRule
	}{
		{
			name: "single port",
			raw:  "tcp:443",
			expected: defined.FirewallRule{
				Protocol:  "tcp",
				PortRange: &defined.PortRange{From: 443, To: 443},
			},
		},
		{
			name: "port range",
			raw:  "tcp:8000-9000",
			expected: defined.FirewallRule{
				Protocol:  "tcp",
				PortRange: &defined.PortRange{From: 8000, To: 9000},
			},
		},
		{
			name: "allowed role",
			raw:  "udp:4242:role-abc",
			expected: defined.FirewallRule{
				Protocol:      "udp",
				AllowedRoleID: "role-abc",
				PortRange:     &defined.PortRange{From: 4242, To: 4242},
			},
		},
		{
			name: "allowed tag",
			raw:  "tcp:22:env:prod",
			expected: defined.FirewallRule{
				Protocol:    "tcp",
				AllowedTags: []string{"env:prod"},
				PortRange:   &defined.PortRange{From: 22, To: 22},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := parseFirewallRule(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rule)
		})
	}
}

func TestParseFirewallRuleInvalid(t *testing.T) {
	for _, raw := range []string{"tcp", "tcp:abc", "tcp:10-xyz"} {
		_, err := parseFirewallRule(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}

func TestFormatFirewallRules(t *testing.T) {
	assert.Equal(t, NotAvailable, formatFirewallRules(nil))

	rules := []defined.FirewallRule{
		{Protocol: "tcp", PortRange: &defined.PortRange{From: 443, To: 443}},
		{Protocol: "udp", PortRange: &defined.PortRange{From: 4000, To: 5000}},
	}

	assert.Equal(t, "tcp:443, udp:4000-5000", formatFirewallRules(rules))
}
