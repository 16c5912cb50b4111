package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Operation string

const (
	OpGenerateDescription Operation = "/generate_description"
	OpIngest              Operation = "/ingest"
	OpSearch              Operation = "/search"
)

// Fallback is the message shown when the backend gives no usable detail.
func (o Operation) Fallback() string {
	switch o {
	case OpGenerateDescription:
		return "Generation failed"
	case OpIngest:
		return "Ingestion failed"
	case OpSearch:
		return "Search failed"
	default:
		return "Request failed"
	}
}

type GenerateDescriptionRequest struct {
	Name      string   `json:"name"`
	Keywords  []string `json:"keywords"`
	ImageURLs []string `json:"image_urls"`
}

type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

type IngestRequest struct {
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	ImageURLs   []string `json:"image_urls"`
	Description string   `json:"description"`
}

type IngestResponse struct {
	ProductID   string   `json:"product_id"`
	Description string   `json:"description"`
	Metadata    Metadata `json:"metadata"`
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type SearchResult struct {
	ProductID string   `json:"product_id"`
	Score     float64  `json:"score"`
	Metadata  Metadata `json:"metadata"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Metadata is the free-form product metadata returned by the backend.
type Metadata map[string]any

func (m Metadata) Name() string {
	return m.stringField("name")
}

func (m Metadata) Description() string {
	return m.stringField("description")
}

func (m Metadata) Keywords() []string {
	return stringList(m["keywords"])
}

func (m Metadata) ImageURLs() []string {
	return stringList(m["image_urls"])
}

func (m Metadata) stringField(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// stringList accepts a JSON array or a string holding a JSON encoded array,
// which is how the vector store keeps list fields.
func stringList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				items = append(items, s)
			} else {
				items = append(items, fmt.Sprint(item))
			}
		}
		return items
	case string:
		var decoded []string
		if err := json.Unmarshal([]byte(val), &decoded); err == nil {
			return decoded
		}
		if strings.TrimSpace(val) != "" {
			return []string{val}
		}
	}
	return nil
}

type ValidationError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (v ValidationError) Field() string {
	parts := make([]string, 0, len(v.Loc))
	for _, l := range v.Loc {
		parts = append(parts, fmt.Sprint(l))
	}
	if field := strings.Join(parts, " -> "); field != "" {
		return field
	}
	return "unknown"
}

// FormatValidationErrors renders errors as "field: message" pairs joined by "; ".
func FormatValidationErrors(errs []ValidationError) string {
	formatted := make([]string, 0, len(errs))
	for _, e := range errs {
		formatted = append(formatted, fmt.Sprintf("%s: %s", e.Field(), e.Msg))
	}
	return strings.Join(formatted, "; ")
}

type APIError struct {
	Op         Operation
	StatusCode int
	Detail     string
	Message    string
	Errors     []ValidationError
	Body       string
}

func (e *APIError) Error() string {
	if formatted := FormatValidationErrors(e.Errors); formatted != "" {
		return formatted
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Op.Fallback()
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func parseAPIError(op Operation, status int, body []byte) *APIError {
	apiErr := &APIError{
		Op:         op,
		StatusCode: status,
		Body:       string(body),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	apiErr.Detail = rawString(parsed.Detail)
	apiErr.Message = rawString(parsed.Message)

	var validationErrors []ValidationError
	if err := json.Unmarshal(parsed.Errors, &validationErrors); err == nil {
		apiErr.Errors = validationErrors
	}

	return apiErr
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
