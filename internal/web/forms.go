package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wgomg/semprod/internal/catalog"
	"github.com/wgomg/semprod/internal/utils"
)

const (
	ingestNotReadyMessage   = "Provide name, keywords, image URLs, and generate a description first."
	generateNotReadyMessage = "Provide name, keywords, and image URLs before generating a description."
	queryRequiredMessage    = "Enter a search query."
)

// IngestForm holds the raw ingest inputs as typed by the user.
type IngestForm struct {
	Name           string
	KeywordsInput  string
	ImageURLsInput string
	Description    string
}

func ingestFormFromRequest(r *http.Request) IngestForm {
	return IngestForm{
		Name:           r.PostFormValue("name"),
		KeywordsInput:  r.PostFormValue("keywords"),
		ImageURLsInput: r.PostFormValue("image_urls"),
		Description:    r.PostFormValue("description"),
	}
}

func (f IngestForm) Keywords() []string {
	return utils.SplitList(f.KeywordsInput)
}

func (f IngestForm) ImageURLs() []string {
	return utils.SplitList(f.ImageURLsInput)
}

func (f IngestForm) hasProductInputs() bool {
	return strings.TrimSpace(f.Name) != "" && len(f.Keywords()) > 0 && len(f.ImageURLs()) > 0
}

// Ready reports whether the form can be ingested.
func (f IngestForm) Ready() bool {
	return f.hasProductInputs() && strings.TrimSpace(f.Description) != ""
}

// CanGenerate reports whether a description may be requested. Once a
// description exists, generation is off until the field is cleared.
func (f IngestForm) CanGenerate() bool {
	return f.hasProductInputs() && strings.TrimSpace(f.Description) == ""
}

func (f IngestForm) generateRequest() catalog.GenerateDescriptionRequest {
	return catalog.GenerateDescriptionRequest{
		Name:      f.Name,
		Keywords:  f.Keywords(),
		ImageURLs: f.ImageURLs(),
	}
}

func (f IngestForm) ingestRequest() catalog.IngestRequest {
	return catalog.IngestRequest{
		Name:        f.Name,
		Keywords:    f.Keywords(),
		ImageURLs:   f.ImageURLs(),
		Description: strings.TrimSpace(f.Description),
	}
}

type IngestPage struct {
	Form        IngestForm
	DescError   string
	IngestError string
	Result      *catalog.IngestResponse
}

type SearchForm struct {
	Query string
	TopK  int
}

func searchFormFromRequest(r *http.Request, defaultTopK int) SearchForm {
	return SearchForm{
		Query: r.PostFormValue("query"),
		TopK:  parseTopK(r.PostFormValue("top_k"), defaultTopK),
	}
}

// parseTopK does not clamp; the bounds are input attributes only.
func parseTopK(value string, defaultTopK int) int {
	topK, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultTopK
	}
	return topK
}

type SearchPage struct {
	Form    SearchForm
	MinTopK int
	MaxTopK int
	Results []catalog.SearchResult
	Error   string
}

// ShowNoResults is true after a successful search that matched nothing.
// Before any query the page renders neither results nor this message.
func (p SearchPage) ShowNoResults() bool {
	return len(p.Results) == 0 && strings.TrimSpace(p.Form.Query) != "" && p.Error == ""
}
