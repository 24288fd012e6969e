package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnhttp "github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/hosts", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer dnkey-test", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]interface{}{"data": map[string]string{"id": "host-1"}}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Do(context.Background(), &dnhttp.Request{
			Method: "GET",
			Path:   "/v1/hosts",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]interface{}

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Contains(t, result, "data")
	})

	t.Run("no authorization header without api key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "")

		_, err := client.Get(context.Background(), "/v1/downloads", nil)
		require.NoError(t, err)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/hosts", request.URL.Path)
			assert.Equal(t, "pageSize=50", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Do(context.Background(), &dnhttp.Request{
			Method: "GET",
			Path:   "/v1/hosts",
			Query:  url.Values{"pageSize": []string{"50"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "lighthouse-1", body["name"])

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Do(context.Background(), &dnhttp.Request{
			Method: "POST",
			Path:   "/v1/hosts",
			Body:   map[string]string{"name": "lighthouse-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("nil body becomes empty JSON object on POST", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Empty(t, body)

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		_, err := client.Post(context.Background(), "/v1/hosts/host-1/block", nil)
		require.NoError(t, err)
	})

	t.Run("path joining normalizes slashes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/hosts", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		for _, path := range []string{"/v1/hosts", "v1/hosts"} {
			client := dnhttp.NewClient(server.URL+"/", "dnkey-test")

			_, err := client.Get(context.Background(), path, nil)
			require.NoError(t, err)
		}
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Do(context.Background(), &dnhttp.Request{
			Method: "GET",
			Path:   "/v1/hosts",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := dnhttp.NewClient(server.URL, "dnkey-test", dnhttp.WithLogger(logger), dnhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/v1/hosts", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		kind       defined.ErrorKind
		message    string
	}{
		{
			name:       "400 validation",
			statusCode: http.StatusBadRequest,
			body:       `{"errors":[{"path":"name","message":"name is required","code":"required"}]}`,
			kind:       defined.ErrorKindValidation,
			message:    "Validation error",
		},
		{
			name:       "401 authentication",
			statusCode: http.StatusUnauthorized,
			body:       `{"errors":[]}`,
			kind:       defined.ErrorKindAuthentication,
			message:    "Authentication failed",
		},
		{
			name:       "403 permission denied",
			statusCode: http.StatusForbidden,
			body:       `{}`,
			kind:       defined.ErrorKindPermissionDenied,
			message:    "Permission denied",
		},
		{
			name:       "404 not found",
			statusCode: http.StatusNotFound,
			body:       `{}`,
			kind:       defined.ErrorKindNotFound,
			message:    "Resource not found",
		},
		{
			name:       "500 server error with unparseable body",
			statusCode: http.StatusInternalServerError,
			body:       `oops`,
			kind:       defined.ErrorKindServer,
			message:    "Server error",
		},
		{
			name:       "503 server error",
			statusCode: http.StatusServiceUnavailable,
			body:       ``,
			kind:       defined.ErrorKindServer,
			message:    "Server error",
		},
		{
			name:       "418 generic client error",
			statusCode: http.StatusTeapot,
			body:       `{}`,
			kind:       defined.ErrorKindClient,
			message:    "Unexpected API error (418)",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(testCase.statusCode)
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := dnhttp.NewClient(server.URL, "dnkey-test")

			resp, err := client.Get(context.Background(), "/v1/hosts", nil)
			require.Error(t, err)
			assert.Equal(t, testCase.statusCode, resp.StatusCode)

			apiErr := &defined.APIError{}
			ok := errors.As(err, &apiErr)
			require.True(t, ok)
			assert.Equal(t, testCase.kind, apiErr.Kind)
			assert.Equal(t, testCase.message, apiErr.Message)
			assert.Equal(t, testCase.statusCode, apiErr.StatusCode)
			assert.NotNil(t, apiErr.Errors)
			assert.NotNil(t, apiErr.Response)
		})
	}
}

func TestClient_ValidationErrorDetails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"errors":[` +
			`{"path":"name","message":"name is required","code":"required"},` +
			`{"path":"cidr","message":"cidr is invalid","code":"invalid"}]}`))
	}))
	defer server.Close()

	client := dnhttp.NewClient(server.URL, "dnkey-test")

	_, err := client.Post(context.Background(), "/v1/networks", map[string]string{})
	require.Error(t, err)
	require.True(t, defined.IsValidation(err))

	apiErr := &defined.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []defined.ErrorDetail{
		{Path: "name", Message: "name is required", Code: "required"},
		{Path: "cidr", Message: "cidr is invalid", Code: "invalid"},
	}, apiErr.Errors)
	assert.Equal(t, "Validation error (name is required; cidr is invalid)", apiErr.Error())
}

func TestClient_SuccessBodies(t *testing.T) {
	t.Parallel()

	t.Run("204 returns empty body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Delete(context.Background(), "/v1/hosts/host-1")
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
		assert.Empty(t, resp.Body)
	})

	t.Run("200 with empty body succeeds", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		resp, err := client.Get(context.Background(), "/v1/hosts", nil)
		require.NoError(t, err)
		assert.Empty(t, resp.Body)
	})

	t.Run("200 with invalid JSON fails with client kind", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		client := dnhttp.NewClient(server.URL, "dnkey-test")

		_, err := client.Get(context.Background(), "/v1/hosts", nil)
		require.Error(t, err)

		apiErr := &defined.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, defined.ErrorKindClient, apiErr.Kind)
		assert.Equal(t, 200, apiErr.StatusCode)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*dnhttp.Client, context.Context) (*dnhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *dnhttp.Client, ctx context.Context) (*dnhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *dnhttp.Client, ctx context.Context) (*dnhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *dnhttp.Client, ctx context.Context) (*dnhttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *dnhttp.Client, ctx context.Context) (*dnhttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *dnhttp.Client, ctx context.Context) (*dnhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := dnhttp.NewClient(server.URL, "dnkey-test")
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_Close(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := dnhttp.NewClient(server.URL, "dnkey-test")

	_, err := client.Get(context.Background(), "/v1/hosts", nil)
	require.NoError(t, err)

	client.Close()
	client.Close() // idempotent

	_, err = client.Post(context.Background(), "/v1/hosts", map[string]string{"name": "h"})
	require.Error(t, err)
	require.ErrorIs(t, err, defined.ErrClientClosed)
	assert.True(t, defined.IsTransport(err))
	assert.Equal(t, 1, requests)
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	// Point at a server that is no longer listening.
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	server.Close()

	client := dnhttp.NewClient(server.URL, "dnkey-test")

	_, err := client.Get(context.Background(), "/v1/hosts", nil)
	require.Error(t, err)
	assert.True(t, defined.IsTransport(err))
}

func TestClient_PerRequestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := dnhttp.NewClient(server.URL, "dnkey-test")

	_, err := client.Do(context.Background(), &dnhttp.Request{
		Method:  "GET",
		Path:    "/v1/hosts",
		Timeout: 20 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, defined.IsTransport(err))
}
