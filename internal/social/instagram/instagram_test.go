package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/hubcast/internal/social"
)

func TestPublishTwoStepFlow(t *testing.T) {
	var paths []string
	var containerBody, publishBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/me/media":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&containerBody))
			w.Write([]byte(`{"id":"container_42"}`))
		case "/me/media_publish":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&publishBody))
			w.Write([]byte(`{"id":"ig_post_7"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(Config{AccessToken: "ig-token", BaseURL: server.URL})
	data, err := client.Publish(context.Background(), social.Request{
		Content:  "caption here",
		MediaURL: "https://img.example/a.png",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/me/media", "/me/media_publish"}, paths)
	assert.Equal(t, map[string]any{
		"image_url":    "https://img.example/a.png",
		"caption":      "caption here",
		"access_token": "ig-token",
	}, containerBody)
	assert.Equal(t, map[string]any{
		"creation_id":  "container_42",
		"access_token": "ig-token",
	}, publishBody)
	assert.Equal(t, map[string]any{"id": "ig_post_7"}, data)
}

func TestPublishRequiresMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no HTTP call expected without media")
	}))
	defer server.Close()

	client := New(Config{AccessToken: "ig-token", BaseURL: server.URL})
	_, err := client.Publish(context.Background(), social.Request{Content: "text"})

	var validation social.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Instagram", validation.Provider)
	assert.Contains(t, err.Error(), "requires an image")
}

func TestPublishContainerFailureAborts(t *testing.T) {
	var publishCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/media":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"invalid image_url"}}`))
		case "/me/media_publish":
			publishCalled = true
		}
	}))
	defer server.Close()

	client := New(Config{AccessToken: "ig-token", BaseURL: server.URL})
	_, err := client.Publish(context.Background(), social.Request{
		Content:  "caption",
		MediaURL: "https://img.example/bad.png",
	})

	var upstream social.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.False(t, publishCalled, "publish step skipped after container failure")
}

func TestPublishMissingContainerID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{AccessToken: "ig-token", BaseURL: server.URL})
	_, err := client.Publish(context.Background(), social.Request{
		Content:  "caption",
		MediaURL: "https://img.example/a.png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no container id")
}

func TestConfigFromEnvMissing(t *testing.T) {
	t.Setenv(envAccessToken, "")

	_, err := ConfigFromEnv()
	var missing social.MissingCredentialError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Instagram", missing.Provider)
}
