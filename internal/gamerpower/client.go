package gamerpower

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kula-app/ggway/internal/config"
	"github.com/kula-app/ggway/internal/jsonvalue"
	"github.com/kula-app/ggway/internal/query"
)

const (
	// ListResource is the collection of live giveaways
	ListResource = "/giveaways"

	// ItemResource returns a single giveaway looked up by id
	ItemResource = "/giveaway"

	// RequestIDHeader carries a per-request identifier that also appears in the debug log
	RequestIDHeader = "X-Request-ID"
)

// Endpoint builds the request URL for the query against the API base URL.
//
// A query holding only an id targets the single-giveaway resource, every
// other query targets the giveaway collection.
func Endpoint(baseURL string, q query.Query) string {
	resource := ListResource
	if q.IsIDLookup() {
		resource = ItemResource
	}
	return strings.TrimRight(baseURL, "/") + resource + q.Encode()
}

// Client talks to the giveaway listing API
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	config     *config.Config
}

// NewClient creates a new API client. A nil httpClient uses a client with the configured timeout.
func NewClient(httpClient *http.Client, logger *slog.Logger, cfg *config.Config) *Client {
	if httpClient == nil {
		// A zero Timeout keeps net/http's default of no timeout
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		config:     cfg,
	}
}

// URL returns the request URL for the query
func (c *Client) URL(q query.Query) string {
	return Endpoint(c.config.BaseURL, q)
}

// Giveaways fetches and parses the giveaways matching the query.
//
// The result is an array of giveaway objects for list queries and a single
// object for id lookups. API error payloads are returned like any other
// document.
func (c *Client) Giveaways(ctx context.Context, q query.Query) (jsonvalue.Value, error) {
	c.logger.Debug("query parsed", "query", q)

	body, err := c.Fetch(ctx, c.URL(q))
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("failed to fetch giveaways: %w", err)
	}

	doc, err := jsonvalue.Parse(body)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("failed to parse giveaways: %w", err)
	}

	c.logger.Debug("response parsed", "kind", doc.Kind(), "entries", doc.Len())
	return doc, nil
}

// Fetch performs a single GET request and returns the response body.
//
// The status code is not checked: a non-2xx response body is returned as-is.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	logger.Debug("sending request", "method", req.Method, "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("response received",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"bytes", len(body))
	return body, nil
}
