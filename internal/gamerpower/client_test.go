package gamerpower

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kula-app/ggway/internal/config"
	"github.com/kula-app/ggway/internal/jsonvalue"
	"github.com/kula-app/ggway/internal/query"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.UserAgent = "ggway-test"
	return NewClient(nil, discardLogger(), cfg)
}

func queryOf(pairs ...any) query.Query {
	var q query.Query
	for i := 0; i < len(pairs); i += 2 {
		q.Set(pairs[i].(query.Filter), pairs[i+1].(string))
	}
	return q
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		query query.Query
		want  string
	}{
		{
			name:  "empty query lists all giveaways",
			base:  config.DefaultBaseURL,
			query: query.Query{},
			want:  "https://www.gamerpower.com/api/giveaways?",
		},
		{
			name:  "id lookup uses the single resource",
			base:  config.DefaultBaseURL,
			query: queryOf(query.ID, "525"),
			want:  "https://www.gamerpower.com/api/giveaway?id=525",
		},
		{
			name:  "filters use the collection",
			base:  config.DefaultBaseURL,
			query: queryOf(query.Platform, "steam", query.Type, "loot", query.SortBy, "value"),
			want:  "https://www.gamerpower.com/api/giveaways?platform=steam&type=loot&sort-by=value",
		},
		{
			name:  "id with other filters uses the collection",
			base:  config.DefaultBaseURL,
			query: queryOf(query.ID, "525", query.Platform, "pc"),
			want:  "https://www.gamerpower.com/api/giveaways?id=525&platform=pc",
		},
		{
			name:  "trailing slash on base",
			base:  "http://localhost:8080/api/",
			query: queryOf(query.Type, "beta"),
			want:  "http://localhost:8080/api/giveaways?type=beta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Endpoint(tt.base, tt.query))
		})
	}
}

func TestClient_Giveaways(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/giveaways", r.URL.Path)
		assert.Equal(t, "platform=steam&type=loot&sort-by=value", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "ggway-test", r.Header.Get("User-Agent"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id should be a UUID")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"title":"Game","worth":"$9.99","gamerpower_url":"https://x"}, null]`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api")
	doc, err := client.Giveaways(context.Background(),
		queryOf(query.Platform, "steam", query.Type, "loot", query.SortBy, "value"))
	require.NoError(t, err)

	require.Equal(t, jsonvalue.Array, doc.Kind())
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, "Game", doc.Index(0).Get("title").String())
}

func TestClient_GiveawaysByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/giveaway", r.URL.Path)
		assert.Equal(t, "525", r.URL.Query().Get("id"))
		_, _ = io.WriteString(w, `{"id":525,"title":"Loot","worth":"N/A","gamerpower_url":"https://y"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	doc, err := client.Giveaways(context.Background(), queryOf(query.ID, "525"))
	require.NoError(t, err)

	assert.Equal(t, jsonvalue.Object, doc.Kind())
	assert.Equal(t, "Loot", doc.Get("title").String())
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status":0,"status_message":"Object not found"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	doc, err := client.Giveaways(context.Background(), queryOf(query.ID, "0"))
	require.NoError(t, err)
	assert.Equal(t, "Object not found", doc.Get("status_message").String())
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>Bad Gateway</html>`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Giveaways(context.Background(), query.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse giveaways")
}

func TestClient_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL)
	_, err := client.Giveaways(context.Background(), query.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch giveaways")
}

func TestClient_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(t, server.URL)
	_, err := client.Fetch(ctx, server.URL+"/giveaways?")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_ConfiguredTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timeout = 3 * time.Second

	client := NewClient(nil, discardLogger(), cfg)
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)

	custom := &http.Client{}
	client = NewClient(custom, discardLogger(), cfg)
	assert.Same(t, custom, client.httpClient)
}
