package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgomg/semprod/internal/config"
	"github.com/wgomg/semprod/internal/utils"
)

type recorded struct {
	path        string
	contentType string
	requestID   string
	body        map[string]any
}

func setupBackend(t *testing.T, status int, response string) (*Client, *recorded) {
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.contentType = r.Header.Get("Content-Type")
		rec.requestID = r.Header.Get("X-Request-ID")
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &rec.body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{Catalog: config.CatalogConfig{URL: server.URL}}
	client, err := NewClient(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)

	return client, rec
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(&config.Config{}, utils.NewDiscardLogger())
	assert.Error(t, err)
}

func TestGenerateDescription(t *testing.T) {
	client, rec := setupBackend(t, http.StatusOK, `{"description":"A navy wool rug."}`)

	resp, err := client.GenerateDescription(context.Background(), GenerateDescriptionRequest{
		Name:      "Rug",
		Keywords:  []string{"wool", "navy"},
		ImageURLs: []string{"https://img.example/1.jpg"},
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, "A navy wool rug.", resp.Description)
	assert.Equal(t, "/generate_description", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.Equal(t, "req-1", rec.requestID)
	assert.Equal(t, map[string]any{
		"name":       "Rug",
		"keywords":   []any{"wool", "navy"},
		"image_urls": []any{"https://img.example/1.jpg"},
	}, rec.body)
}

func TestIngest(t *testing.T) {
	client, rec := setupBackend(t, http.StatusOK, `{
		"product_id": "7f0c",
		"description": "Stored rug.",
		"metadata": {"name": "Rug", "keywords": ["wool"], "image_urls": ["https://img.example/1.jpg"]}
	}`)

	resp, err := client.Ingest(context.Background(), IngestRequest{
		Name:        "Rug",
		Keywords:    []string{"wool"},
		ImageURLs:   []string{"https://img.example/1.jpg"},
		Description: "Stored rug.",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "7f0c", resp.ProductID)
	assert.Equal(t, "Stored rug.", resp.Description)
	assert.Equal(t, "Rug", resp.Metadata.Name())
	assert.Equal(t, "/ingest", rec.path)
	assert.Empty(t, rec.requestID)
	assert.Equal(t, "Stored rug.", rec.body["description"])
	assert.Len(t, rec.body, 4)
}

func TestSearch(t *testing.T) {
	client, rec := setupBackend(t, http.StatusOK, `{"results": [
		{"product_id": "a", "score": 0.91, "metadata": {"name": "Navy rug"}},
		{"product_id": "b", "score": 0.42, "metadata": {}}
	]}`)

	resp, err := client.Search(context.Background(), SearchRequest{Query: "navy rug", TopK: 2}, "req-2")
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a", resp.Results[0].ProductID)
	assert.InDelta(t, 0.91, resp.Results[0].Score, 1e-9)
	assert.Equal(t, "Navy rug", resp.Results[0].Metadata.Name())
	assert.Equal(t, "/search", rec.path)
	assert.Equal(t, map[string]any{"query": "navy rug", "top_k": float64(2)}, rec.body)
}

func TestSearchNullResults(t *testing.T) {
	client, _ := setupBackend(t, http.StatusOK, `{"results": null}`)

	resp, err := client.Search(context.Background(), SearchRequest{Query: "x", TopK: 5}, "")
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		call    func(c *Client) error
		wantMsg string
	}{
		{
			name:   "validation errors are formatted",
			status: http.StatusBadRequest,
			body: `{"detail": "body -> keywords: Must provide at least one item.", "errors": [
				{"loc": ["body", "keywords"], "msg": "Must provide at least one item."},
				{"loc": ["body", "image_urls", 0], "msg": "Input should be a valid URL"}
			]}`,
			call:    ingestCall,
			wantMsg: "body -> keywords: Must provide at least one item.; body -> image_urls -> 0: Input should be a valid URL",
		},
		{
			name:    "missing loc becomes unknown",
			status:  http.StatusBadRequest,
			body:    `{"errors": [{"msg": "bad"}]}`,
			call:    ingestCall,
			wantMsg: "unknown: bad",
		},
		{
			name:    "empty errors array falls back to detail",
			status:  http.StatusBadRequest,
			body:    `{"detail": "Description is required and cannot be empty.", "errors": []}`,
			call:    ingestCall,
			wantMsg: "Description is required and cannot be empty.",
		},
		{
			name:    "message used without detail",
			status:  http.StatusInternalServerError,
			body:    `{"message": "store unavailable"}`,
			call:    ingestCall,
			wantMsg: "store unavailable",
		},
		{
			name:    "ingest fallback",
			status:  http.StatusInternalServerError,
			body:    `not json`,
			call:    ingestCall,
			wantMsg: "Ingestion failed",
		},
		{
			name:    "generate detail",
			status:  http.StatusInternalServerError,
			body:    `{"detail": "Description generation failed"}`,
			call:    generateCall,
			wantMsg: "Description generation failed",
		},
		{
			name:    "generate fallback",
			status:  http.StatusBadGateway,
			body:    `{}`,
			call:    generateCall,
			wantMsg: "Generation failed",
		},
		{
			name:    "non string detail ignored",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail": [{"loc": ["body"], "msg": "x"}]}`,
			call:    searchCall,
			wantMsg: "Search failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := setupBackend(t, tt.status, tt.body)

			err := tt.call(client)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(&config.Config{Catalog: config.CatalogConfig{URL: url}}, utils.NewDiscardLogger())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchRequest{Query: "rug", TopK: 5}, "")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "failed to reach backend")
}

func TestUndecodableSuccessBody(t *testing.T) {
	client, _ := setupBackend(t, http.StatusOK, `<html>`)

	_, err := client.GenerateDescription(context.Background(), GenerateDescriptionRequest{Name: "Rug"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func ingestCall(c *Client) error {
	_, err := c.Ingest(context.Background(), IngestRequest{Name: "Rug"}, "")
	return err
}

func generateCall(c *Client) error {
	_, err := c.GenerateDescription(context.Background(), GenerateDescriptionRequest{Name: "Rug"}, "")
	return err
}

func searchCall(c *Client) error {
	_, err := c.Search(context.Background(), SearchRequest{Query: "rug", TopK: 5}, "")
	return err
}
