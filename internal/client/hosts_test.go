package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajpuro/defined-go/pkg/defined"
)

func TestHostsClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		// Decode into a raw map so absent keys can be distinguished from
		// zero values.
		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "edge-1", body["name"])
		assert.Equal(t, "network-1", body["networkID"])
		assert.InDelta(t, 0, body["listenPort"], 0)
		assert.Equal(t, false, body["isLighthouse"])
		assert.Equal(t, false, body["isRelay"])

		for _, key := range []string{"roleID", "ipAddress", "staticAddresses", "tags", "configOverrides"} {
			assert.NotContains(t, body, key)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Host{
				ID:        "host-1",
				NetworkID: "network-1",
				Name:      "edge-1",
				CreatedAt: time.Now().UTC(),
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	host, err := client.Hosts().Create(context.Background(), &defined.HostCreateRequest{
		Name:      "edge-1",
		NetworkID: "network-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "host-1", host.ID)
	assert.Equal(t, "edge-1", host.Name)
}

func TestHostsClient_CreateLighthouse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, true, body["isLighthouse"])
		assert.Equal(t, "role-1", body["roleID"])
		assert.Equal(t, []interface{}{"203.0.113.1:4242"}, body["staticAddresses"])
		assert.InDelta(t, 4242, body["listenPort"], 0)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Host{ID: "host-2", IsLighthouse: true},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	host, err := client.Hosts().Create(context.Background(), &defined.HostCreateRequest{
		Name:            "lighthouse-1",
		NetworkID:       "network-1",
		RoleID:          "role-1",
		StaticAddresses: []string{"203.0.113.1:4242"},
		ListenPort:      4242,
		IsLighthouse:    true,
	})
	require.NoError(t, err)
	assert.True(t, host.IsLighthouse)
}

func TestHostsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "true", query.Get("filter.isLighthouse"))
		assert.Equal(t, "false", query.Get("filter.isBlocked"))
		assert.Equal(t, "linux", query.Get("filter.metadata.platform"))
		assert.Equal(t, "role-1", query.Get("filter.roleID"))
		assert.Equal(t, "10", query.Get("pageSize"))
		assert.Equal(t, "true", query.Get("includeCounts"))
		assert.False(t, query.Has("cursor"))
		assert.False(t, query.Has("filter.isRelay"))
		assert.False(t, query.Has("filter.endpointOIDCUserID"))

		_ = json.NewEncoder(w).Encode(defined.ListResponse[defined.Host]{
			Data: []defined.Host{{ID: "host-1"}, {ID: "host-2"}},
			Metadata: defined.ListMetadata{
				NextCursor:  "cursor-2",
				HasNextPage: true,
				TotalCount:  12,
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	list, err := client.Hosts().List(context.Background(), &defined.HostListOptions{
		ListOptions: defined.ListOptions{
			IncludeCounts: true,
			PageSize:      10,
		},
		FilterIsBlocked:        defined.Bool(false),
		FilterIsLighthouse:     defined.Bool(true),
		FilterMetadataPlatform: "linux",
		FilterRoleID:           "role-1",
	})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, "cursor-2", list.Metadata.NextCursor)
	assert.True(t, list.Metadata.HasNextPage)
	assert.Equal(t, int64(12), list.Metadata.TotalCount)
}

func TestHostsClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts/host-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Host{ID: "host-1", Name: "edge-1"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	host, err := client.Hosts().Get(context.Background(), "host-1")
	require.NoError(t, err)
	assert.Equal(t, "host-1", host.ID)
}

func TestHostsClient_GetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts/host-X", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"message":"host not found","code":"not_found"}]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Hosts().Get(context.Background(), "host-X")
	require.Error(t, err)
	assert.True(t, defined.IsNotFound(err))

	apiErr := &defined.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestHostsClient_GetIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":"host-1","name":"edge-1","listenPort":4242}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	first, err := client.Hosts().Get(context.Background(), "host-1")
	require.NoError(t, err)

	second, err := client.Hosts().Get(context.Background(), "host-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHostsClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Host updates are routed to the v2 endpoint.
		assert.Equal(t, "/v2/hosts/host-1", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "edge-renamed", body["name"])
		assert.Equal(t, []interface{}{"env:prod"}, body["tags"])
		assert.NotContains(t, body, "roleID")
		assert.NotContains(t, body, "listenPort")
		assert.NotContains(t, body, "staticAddresses")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Host{ID: "host-1", Name: "edge-renamed", Tags: []string{"env:prod"}},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	host, err := client.Hosts().Update(context.Background(), "host-1", &defined.HostUpdateRequest{
		Name: defined.String("edge-renamed"),
		Tags: &[]string{"env:prod"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edge-renamed", host.Name)
}

func TestHostsClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts/host-1", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Hosts().Delete(context.Background(), "host-1")
	require.NoError(t, err)
}

func TestHostsClient_BlockUnblock(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		paths = append(paths, r.URL.Path)

		blocked := r.URL.Path == "/v1/hosts/host-1/block"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Host{ID: "host-1", IsBlocked: blocked},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	host, err := client.Hosts().Block(context.Background(), "host-1")
	require.NoError(t, err)
	assert.True(t, host.IsBlocked)

	host, err = client.Hosts().Unblock(context.Background(), "host-1")
	require.NoError(t, err)
	assert.False(t, host.IsBlocked)

	assert.Equal(t, []string{"/v1/hosts/host-1/block", "/v1/hosts/host-1/unblock"}, paths)
}

func TestHostsClient_DebugCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts/host-1/command", r.URL.Path)

		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "StreamLogs", body["command"])
		args, ok := body["args"].(map[string]interface{})
		require.True(t, ok)
		assert.InDelta(t, 60, args["durationSeconds"], 0)
		assert.Equal(t, "debug", args["level"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"logs": "..."},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	result, err := client.Hosts().DebugCommand(context.Background(), "host-1", defined.DebugCommandStreamLogs, map[string]interface{}{
		"durationSeconds": 60,
		"level":           "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "...", (*result)["logs"])
}

func TestHostsClient_DebugCommandNoArgs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "PrintCert", body["command"])
		assert.NotContains(t, body, "args")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"cert": "-----BEGIN NEBULA CERTIFICATE-----"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Hosts().DebugCommand(context.Background(), "host-1", defined.DebugCommandPrintCert, nil)
	require.NoError(t, err)
}

func TestHostsClient_CreateEnrollmentCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hosts/host-1/enrollment-code", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.EnrollmentCode{Code: "code-123", LifetimeSeconds: 300},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	code, err := client.Hosts().CreateEnrollmentCode(context.Background(), "host-1")
	require.NoError(t, err)
	assert.Equal(t, "code-123", code.Code)
	assert.Equal(t, 300, code.LifetimeSeconds)
}

func TestHostsClient_CreateWithEnrollmentCode(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		assert.Equal(t, "/v1/host-and-enrollment-code", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "edge-1", body["name"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.HostAndEnrollmentCode{
				Host:           defined.Host{ID: "host-1", Name: "edge-1"},
				EnrollmentCode: defined.EnrollmentCode{Code: "code-123", LifetimeSeconds: 300},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	result, err := client.Hosts().CreateWithEnrollmentCode(context.Background(), &defined.HostCreateRequest{
		Name:      "edge-1",
		NetworkID: "network-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "host-1", result.Host.ID)
	assert.Equal(t, "code-123", result.EnrollmentCode.Code)

	// Host and code must come from one atomic request, never two.
	assert.Equal(t, 1, requests)
}
