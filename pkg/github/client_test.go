package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		Token:    "test-token",
		Owner:    "grandeclip",
		Repo:     "pick_drop",
		Workflow: "crawl.yml",
		Ref:      "main",
		BaseURL:  baseURL,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Token = ""
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("Defaults applied", func(t *testing.T) {
		cfg := Config{Token: "t", Owner: "o", Repo: "r", Workflow: "w.yml"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "main", cfg.Ref)
		assert.Equal(t, "https://api.github.com", cfg.BaseURL)
	})
}

func TestClient_DispatchCrawl(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	require.NoError(t, client.DispatchCrawl(context.Background(), "product-123"))

	assert.Equal(t, "/repos/grandeclip/pick_drop/actions/workflows/crawl.yml/dispatches", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "main", gotBody["ref"])

	inputs, ok := gotBody["inputs"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "product-123", inputs["productId"])
}

func TestClient_DispatchCrawl_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	err = client.DispatchCrawl(context.Background(), "product-123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_DispatchCrawl_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	err = client.DispatchCrawl(context.Background(), "product-123")
	assert.ErrorIs(t, err, ErrDispatchFailed)
}
