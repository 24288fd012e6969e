package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajpuro/defined-go/pkg/defined"
)

func TestTagsClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tags", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var request defined.TagCreateRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		require.NoError(t, err)

		assert.Equal(t, "env:prod", request.Name)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Tag{Name: request.Name},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	tag, err := client.Tags().Create(context.Background(), &defined.TagCreateRequest{Name: "env:prod"})
	require.NoError(t, err)
	assert.Equal(t, "env:prod", tag.Name)
}

func TestTagsClient_ListUsesV2(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/tags", r.URL.Path)

		_ = json.NewEncoder(w).Encode(defined.ListResponse[defined.Tag]{
			Data: []defined.Tag{{Name: "env:prod"}, {Name: "env:staging"}},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	list, err := client.Tags().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}

func TestTagsClient_GetEscapesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A colon is legal in a path segment and stays literal.
		assert.Equal(t, "/v1/tags/env:prod", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Tag{Name: "env:prod"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	tag, err := client.Tags().Get(context.Background(), "env:prod")
	require.NoError(t, err)
	assert.Equal(t, "env:prod", tag.Name)
}

func TestTagsClient_GetEscapesSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A slash in the tag name must stay a single path segment.
		assert.Equal(t, "/v1/tags/team:a%2Fb", r.URL.EscapedPath())

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Tag{Name: "team:a/b"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	tag, err := client.Tags().Get(context.Background(), "team:a/b")
	require.NoError(t, err)
	assert.Equal(t, "team:a/b", tag.Name)
}

func TestTagsClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tags/env:prod", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "production hosts", body["description"])
		assert.Equal(t, "env:staging", body["before"])
		assert.NotContains(t, body, "configOverrides")
		assert.NotContains(t, body, "after")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Tag{Name: "env:prod", Description: "production hosts"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	tag, err := client.Tags().Update(context.Background(), "env:prod", &defined.TagUpdateRequest{
		Description: defined.String("production hosts"),
		Before:      "env:staging",
	})
	require.NoError(t, err)
	assert.Equal(t, "production hosts", tag.Description)
}

func TestTagsClient_UpdateClearsOverrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		overrides, ok := body["configOverrides"].([]interface{})
		require.True(t, ok)
		assert.Empty(t, overrides)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": defined.Tag{Name: "env:prod"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Tags().Update(context.Background(), "env:prod", &defined.TagUpdateRequest{
		ConfigOverrides: &[]defined.ConfigOverride{},
	})
	require.NoError(t, err)
}

func TestTagsClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tags/env:prod", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Tags().Delete(context.Background(), "env:prod")
	require.NoError(t, err)
}
