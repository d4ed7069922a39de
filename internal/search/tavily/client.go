package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/search"
)

const (
	apiURL      = "https://api.tavily.com/search"
	contentType = "application/json"

	// Tavily caps this server side; keep the provider default in sync.
	DefaultMaxResults = 7
	DefaultTopic      = "general"
)

// Client talks to the Tavily search API.
type Client struct {
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
	Topic      string `json:"topic"`
}

type searchResponse struct {
	Results []map[string]any `json:"results"`
}

// Search runs the query and returns results in Tavily's ranking order. Any
// transport, status or decoding failure comes back as search.Unavailable.
func (c *Client) Search(ctx context.Context, query string, maxResults int, topic string) ([]search.Result, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if topic == "" {
		topic = DefaultTopic
	}

	body, err := json.Marshal(searchRequest{Query: query, MaxResults: maxResults, Topic: topic})
	if err != nil {
		return nil, search.Unavailable(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, search.Unavailable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	c.logger.Debug("tavily search request",
		zap.String("query", query),
		zap.Int("max_results", maxResults),
		zap.String("topic", topic),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, search.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, search.Unavailable(fmt.Errorf("bad status: %s", resp.Status))
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, search.Unavailable(fmt.Errorf("decode response: %w", err))
	}

	results := make([]search.Result, 0, len(response.Results))
	for _, item := range response.Results {
		var result search.Result
		cfg := &mapstructure.DecoderConfig{
			Result:  &result,
			TagName: "mapstructure",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, search.Unavailable(fmt.Errorf("build decoder: %w", err))
		}
		if err := decoder.Decode(item); err != nil {
			return nil, search.Unavailable(fmt.Errorf("decode result: %w", err))
		}
		result.Raw = item
		results = append(results, result)

		if len(results) >= maxResults {
			break
		}
	}

	c.logger.Debug("tavily search response", zap.Int("count", len(results)))

	return results, nil
}
