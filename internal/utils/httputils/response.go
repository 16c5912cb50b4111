package httputils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/wgomg/semprod/internal/utils"
)

func JSONResponse(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// LogResponseBody logs the raw body when raw body logging is enabled and
// leaves resp.Body readable.
func LogResponseBody(resp *http.Response, logger *utils.Logger, reqID string) ([]byte, error) {
	if !logger.RawBodyLog {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	logger.Debug(&reqID, "Raw response body: %s", string(bodyBytes))

	return bodyBytes, nil
}
