package woocommerce

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"wc-order-export/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	return NewClient(config.StoreConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		MaxPages:       10000,
		TimeoutSeconds: 5,
	}, zerolog.Nop())
}

func TestClient_Get_Success(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	params := url.Values{}
	params.Set("per_page", "100")

	body, err := client.Get(context.Background(), "/orders", params)
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "/wp-json/wc/v3/orders", gotPath)
	assert.Equal(t, "100", gotQuery.Get("per_page"))
	assert.Equal(t, "ck_test", gotUser)
	assert.Equal(t, "cs_test", gotPass)
}

func TestClient_Get_TrailingSlashInBaseURL(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/")

	_, err := client.Get(context.Background(), "/orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "/wp-json/wc/v3/orders", gotPath)
}

func TestClient_Get_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "NotFound", status: http.StatusNotFound},
		{name: "Unauthorised", status: http.StatusUnauthorized},
		{name: "ServerError", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.Get(context.Background(), "/orders", nil)
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

func TestClient_Get_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/orders", nil)
	require.Error(t, err)
}
