package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "xero-etl/internal/client/http"
	"xero-etl/internal/logger"
)

func init() {
	logger.InitLogger("test")
}

func fastRetryConfig() *httpclient.RetryConfig {
	return &httpclient.RetryConfig{
		MaxRetries:           2,
		InitialInterval:      time.Millisecond,
		MaxInterval:          5 * time.Millisecond,
		Multiplier:           1.5,
		MaxElapsedTime:       time.Second,
		RetryableStatusCodes: []int{500, 503},
	}
}

func TestHTTPClient_Get(t *testing.T) {
	t.Run("base URL joined with path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/things", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL + "/"))
		resp, err := client.Get(context.Background(), "v1/things")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("absolute URL without base URL", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := httpclient.NewHTTPClient()
		resp, err := client.Get(context.Background(), server.URL+"/anything")
		require.NoError(t, err)
		resp.Body.Close()
	})

	t.Run("relative path without base URL rejected", func(t *testing.T) {
		client := httpclient.NewHTTPClient()
		_, err := client.Get(context.Background(), "v1/things")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid path used without base URL")
	})
}

func TestHTTPClient_RetriesTransientStatusCodes(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(
		httpclient.WithBaseURL(server.URL),
		httpclient.WithRetryConfig(fastRetryConfig()),
	)

	resp, err := client.Get(context.Background(), "/flaky")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(
		httpclient.WithBaseURL(server.URL),
		httpclient.WithRetryConfig(fastRetryConfig()),
	)

	_, err := client.Get(context.Background(), "/protected")
	require.Error(t, err)

	var httpErr *httpclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPClient_PostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL))
	resp, err := client.PostForm(context.Background(), "/token",
		map[string][]string{"grant_type": {"refresh_token"}})
	require.NoError(t, err)
	resp.Body.Close()
}

func TestHTTPClient_ProcessJSONResponse(t *testing.T) {
	t.Run("decodes success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "value"})
		}))
		defer server.Close()

		client := httpclient.NewHTTPClient(httpclient.WithBaseURL(server.URL))
		resp, err := client.Get(context.Background(), "/data")
		require.NoError(t, err)

		var target map[string]string
		require.NoError(t, client.ProcessJSONResponse(resp, &target))
		assert.Equal(t, "value", target["name"])
	})
}
