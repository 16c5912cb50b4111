package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wgomg/semprod/internal/config"
	"github.com/wgomg/semprod/internal/metrics"
	"github.com/wgomg/semprod/internal/utils"
	"github.com/wgomg/semprod/internal/utils/httputils"
)

// Client talks to the catalog backend that generates descriptions, stores
// products and runs similarity search.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *utils.Logger
}

func NewClient(cfg *config.Config, logger *utils.Logger) (*Client, error) {
	if cfg.Catalog.URL == "" {
		return nil, fmt.Errorf("API_BASE is required")
	}

	return &Client{
		baseURL: cfg.Catalog.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.App.HttpTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GenerateDescription(
	ctx context.Context,
	payload GenerateDescriptionRequest,
	reqID string,
) (*GenerateDescriptionResponse, error) {
	c.logger.Info(&reqID, "Requesting description for %q: %d keywords, %d images",
		payload.Name, len(payload.Keywords), len(payload.ImageURLs))

	var result GenerateDescriptionResponse
	if err := c.post(ctx, OpGenerateDescription, payload, &result, reqID); err != nil {
		return nil, err
	}

	c.logger.Debug(&reqID, "Generated description: %.200s", result.Description)

	return &result, nil
}

func (c *Client) Ingest(ctx context.Context, payload IngestRequest, reqID string) (*IngestResponse, error) {
	c.logger.Info(&reqID, "Ingesting product %q: %d keywords, %d images, description length %d",
		payload.Name, len(payload.Keywords), len(payload.ImageURLs), len(payload.Description))

	var result IngestResponse
	if err := c.post(ctx, OpIngest, payload, &result, reqID); err != nil {
		return nil, err
	}

	c.logger.Info(&reqID, "Stored product %s", result.ProductID)

	return &result, nil
}

func (c *Client) Search(ctx context.Context, payload SearchRequest, reqID string) (*SearchResponse, error) {
	c.logger.Info(&reqID, "Searching %q with top_k=%d", utils.Truncate(payload.Query, 120), payload.TopK)

	var result SearchResponse
	if err := c.post(ctx, OpSearch, payload, &result, reqID); err != nil {
		return nil, err
	}
	if result.Results == nil {
		result.Results = []SearchResult{}
	}

	c.logger.Debug(&reqID, "Search returned %d results", len(result.Results))

	return &result, nil
}

func (c *Client) post(ctx context.Context, op Operation, in, out any, reqID string) error {
	started := time.Now()
	endpoint := string(op)

	req, err := httputils.NewJSONRequest(ctx, http.MethodPost, c.baseURL+endpoint, in, c.logger, reqID)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(endpoint, metrics.OutcomeTransport, time.Since(started))
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	_, err = httputils.LogResponseBody(resp, c.logger, reqID)
	if err != nil {
		metrics.ObserveBackend(endpoint, metrics.OutcomeTransport, time.Since(started))
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveBackend(endpoint, metrics.OutcomeAPIError, time.Since(started))
		return c.handleAPIError(op, resp, reqID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ObserveBackend(endpoint, metrics.OutcomeDecode, time.Since(started))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	metrics.ObserveBackend(endpoint, metrics.OutcomeSuccess, time.Since(started))
	return nil
}

func (c *Client) handleAPIError(op Operation, resp *http.Response, reqID string) error {
	body, _ := io.ReadAll(resp.Body)
	apiErr := parseAPIError(op, resp.StatusCode, body)
	c.logger.Error(&reqID, "Backend %s returned %d: %s", op, resp.StatusCode, apiErr.Error())
	return apiErr
}
