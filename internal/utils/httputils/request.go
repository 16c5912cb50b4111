package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/wgomg/semprod/internal/utils"
)

// ParseForm parses an urlencoded or multipart form post.
func ParseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return &HTTPError{Code: http.StatusBadRequest, Message: "Invalid form payload: " + err.Error()}
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return &HTTPError{Code: http.StatusBadRequest, Message: "Invalid form payload: " + err.Error()}
		}
	default:
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be a form encoding",
		}
	}
	return nil
}

// NewJSONRequest builds a request with body marshalled as JSON and logs the
// payload at debug level.
func NewJSONRequest(
	ctx context.Context,
	method, url string,
	body any,
	logger *utils.Logger,
	reqID string,
) (*http.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	logger.Debug(&reqID, "%s %s body: %s", method, url, string(jsonBody))

	return req, nil
}
