package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/hubcast/internal/config"
	"github.com/blacktop/hubcast/internal/social"
)

type stubPoster struct {
	name  string
	calls int
	data  any
	err   error
}

func (s *stubPoster) Name() string { return s.name }

func (s *stubPoster) Publish(ctx context.Context, req social.Request) (any, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func newTestServer(posters ...*stubPoster) (*Server, []*stubPoster) {
	factories := make(map[string]social.Factory, len(posters))
	for _, p := range posters {
		poster := p
		factories[poster.name] = func() (social.Poster, error) { return poster, nil }
	}
	dispatcher := social.NewDispatcher(factories, false)
	return NewServer(config.Default(), dispatcher), posters
}

func doRequest(t *testing.T, server *Server, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestPreflight(t *testing.T) {
	server, _ := newTestServer()
	rec := doRequest(t, server, http.MethodOptions, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assertCORSHeaders(t, rec)
}

func TestPublishSuccess(t *testing.T) {
	server, posters := newTestServer(
		&stubPoster{name: "Twitter", data: map[string]any{"id": "1"}},
		&stubPoster{name: "Facebook", data: map[string]any{"id": "2"}},
	)
	body := `{"content":"hello","platforms":["twitter","facebook"],"user_id":"u1","hashtags":["sale"]}`
	rec := doRequest(t, server, http.MethodPost, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assertCORSHeaders(t, rec)

	var report social.DispatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Success)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "Twitter", report.Results[0].Platform)
	assert.Equal(t, "Facebook", report.Results[1].Platform)
	assert.Equal(t, "Posted to 2 out of 2 platforms", report.Message)

	assert.Equal(t, 1, posters[0].calls)
	assert.Equal(t, 1, posters[1].calls)
}

func TestPublishMissingFields(t *testing.T) {
	poster := &stubPoster{name: "Twitter"}
	server, _ := newTestServer(poster)

	cases := []string{
		`{"platforms":["twitter"],"user_id":"u1"}`,
		`{"content":"hi","user_id":"u1"}`,
		`{"content":"hi","platforms":["twitter"]}`,
	}
	for _, body := range cases {
		rec := doRequest(t, server, http.MethodPost, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assertCORSHeaders(t, rec)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Missing required fields: content, platforms, user_id", resp["error"])
	}
	assert.Zero(t, poster.calls, "no adapter invoked for rejected requests")
}

func TestPublishMalformedJSON(t *testing.T) {
	poster := &stubPoster{name: "Twitter"}
	server, _ := newTestServer(poster)

	rec := doRequest(t, server, http.MethodPost, `{"content":`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertCORSHeaders(t, rec)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
	assert.Zero(t, poster.calls)
}

func TestPublishPartialFailureStays200(t *testing.T) {
	server, _ := newTestServer(
		&stubPoster{name: "Twitter", err: social.UpstreamError{Provider: "Twitter", StatusCode: 500, Body: "oops"}},
		&stubPoster{name: "Facebook", data: map[string]any{"id": "2"}},
	)
	body := `{"content":"hello","platforms":["Twitter","Facebook"],"user_id":"u1"}`
	rec := doRequest(t, server, http.MethodPost, body)

	require.Equal(t, http.StatusOK, rec.Code)

	var report social.DispatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Success)
	assert.False(t, report.Results[0].Success)
	assert.True(t, report.Results[1].Success)
	assert.Equal(t, "Posted to 1 out of 2 platforms", report.Message)
}

func TestPublishUnknownPlatform(t *testing.T) {
	server, _ := newTestServer()
	body := `{"content":"hello","platforms":["tiktok"],"user_id":"u1"}`
	rec := doRequest(t, server, http.MethodPost, body)

	require.Equal(t, http.StatusOK, rec.Code)

	var report social.DispatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "tiktok", report.Results[0].Platform)
	assert.Equal(t, "Platform tiktok not supported or not configured", report.Results[0].Error)
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	server, _ := newTestServer()
	rec := doRequest(t, server, http.MethodOptions, "")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
}
