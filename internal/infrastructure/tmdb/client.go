package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"movie-platform-backend/internal/config"
	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/pkg/logger"
)

// Client fetches trending movies from the TMDb v3 API
type Client struct {
	cfg        config.TMDBConfig
	httpClient *http.Client
}

// NewClient creates a TMDb client; the configured timeout bounds each request
func NewClient(cfg config.TMDBConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type trendingResponse struct {
	Page         int               `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// FetchTrending issues exactly one request for the given window.
// No credential means ConfigurationError and no network call.
func (c *Client) FetchTrending(ctx context.Context, window model.TrendingWindow) ([]model.RawRecord, error) {
	if !c.cfg.HasCredential() {
		return nil, model.NewConfigurationError("TMDB_API_KEY is not set")
	}

	endpoint := c.trendingURL(window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.NewConfigurationError(fmt.Sprintf("invalid TMDb request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))
	req.Header.Set("Accept", "application/json")

	logger.Debug("fetching TMDb trending: " + string(window))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewRemoteFetchError(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewRemoteFetchError(resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewRemoteFetchError(resp.StatusCode, string(body), nil)
	}

	var payload trendingResponse
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, model.NewRemoteFetchError(resp.StatusCode, string(body), fmt.Errorf("decode body: %w", err))
	}

	records := decodeRecords(payload.Results)

	logger.Info("TMDb trending fetched", map[string]interface{}{
		"window":  string(window),
		"results": len(records),
		"dropped": len(payload.Results) - len(records),
	})

	return records, nil
}

// decodeRecords keeps the entries that are JSON objects; anything else is dropped
func decodeRecords(results []json.RawMessage) []model.RawRecord {
	records := make([]model.RawRecord, 0, len(results))
	for _, entry := range results {
		var record model.RawRecord
		decoder := json.NewDecoder(bytes.NewReader(entry))
		decoder.UseNumber()
		if err := decoder.Decode(&record); err != nil || record == nil {
			continue
		}
		records = append(records, record)
	}
	return records
}

func (c *Client) trendingURL(window model.TrendingWindow) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	query := url.Values{}
	query.Set("language", c.cfg.Language)
	return fmt.Sprintf("%s/trending/movie/%s?%s", base, url.PathEscape(string(window)), query.Encode())
}
