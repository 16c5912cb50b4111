package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/wgomg/semprod/internal/catalog"
	"github.com/wgomg/semprod/internal/config"
	"github.com/wgomg/semprod/internal/utils"
	"github.com/wgomg/semprod/internal/utils/httputils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Catalog is the subset of the backend client the pages depend on.
type Catalog interface {
	GenerateDescription(ctx context.Context, payload catalog.GenerateDescriptionRequest, reqID string) (*catalog.GenerateDescriptionResponse, error)
	Ingest(ctx context.Context, payload catalog.IngestRequest, reqID string) (*catalog.IngestResponse, error)
	Search(ctx context.Context, payload catalog.SearchRequest, reqID string) (*catalog.SearchResponse, error)
}

type Handler struct {
	logger  *utils.Logger
	catalog Catalog
	cfg     *config.Config
	pages   map[string]*template.Template
}

type pageData struct {
	Title  string
	Active string
	Page   any
}

var templateFuncs = template.FuncMap{
	"percent": func(score float64) string {
		return fmt.Sprintf("%.1f%%", score*100)
	},
	"plural": func(n int, singular, plural string) string {
		if n == 1 {
			return singular
		}
		return plural
	},
}

func NewHandler(logger *utils.Logger, client Catalog, cfg *config.Config) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home.html", "ingest.html", "search.html"} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		logger:  logger,
		catalog: client,
		cfg:     cfg,
		pages:   pages,
	}, nil
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html", pageData{Title: "Semantic Product Retrieval", Active: "home"})
}

func (h *Handler) HandleIngestPage(w http.ResponseWriter, r *http.Request) {
	h.renderIngest(w, r, IngestPage{})
}

func (h *Handler) HandleGenerateDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := RequestID(ctx)

	if err := httputils.ParseForm(r); err != nil {
		h.logger.Error(&reqID, "Form parse error: %v", err)
		httputils.HandleError(w, err)
		return
	}

	form := ingestFormFromRequest(r)
	page := IngestPage{Form: form}

	if strings.TrimSpace(form.Description) != "" {
		h.logger.Debug(&reqID, "Description already present, skipping generation")
		h.renderIngest(w, r, page)
		return
	}
	if !form.CanGenerate() {
		page.DescError = generateNotReadyMessage
		h.renderIngest(w, r, page)
		return
	}

	resp, err := h.catalog.GenerateDescription(ctx, form.generateRequest(), reqID)
	if err != nil {
		h.logger.Error(&reqID, "Description generation failed: %v", err)
		page.DescError = err.Error()
		page.Form.Description = ""
		h.renderIngest(w, r, page)
		return
	}

	page.Form.Description = resp.Description
	h.renderIngest(w, r, page)
}

func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := RequestID(ctx)

	if err := httputils.ParseForm(r); err != nil {
		h.logger.Error(&reqID, "Form parse error: %v", err)
		httputils.HandleError(w, err)
		return
	}

	form := ingestFormFromRequest(r)
	page := IngestPage{Form: form}

	if !form.Ready() {
		page.IngestError = ingestNotReadyMessage
		h.renderIngest(w, r, page)
		return
	}

	resp, err := h.catalog.Ingest(ctx, form.ingestRequest(), reqID)
	if err != nil {
		h.logger.Error(&reqID, "Ingestion failed: %v", err)
		page.IngestError = err.Error()
		h.renderIngest(w, r, page)
		return
	}

	h.logger.Info(&reqID, "Product %s ingested", resp.ProductID)

	h.renderIngest(w, r, IngestPage{Result: resp})
}

func (h *Handler) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	h.renderSearch(w, r, SearchPage{Form: SearchForm{TopK: h.cfg.Search.DefaultTopK}})
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := RequestID(ctx)

	if err := httputils.ParseForm(r); err != nil {
		h.logger.Error(&reqID, "Form parse error: %v", err)
		httputils.HandleError(w, err)
		return
	}

	page := SearchPage{Form: searchFormFromRequest(r, h.cfg.Search.DefaultTopK)}

	if strings.TrimSpace(page.Form.Query) == "" {
		page.Error = queryRequiredMessage
		h.renderSearch(w, r, page)
		return
	}

	resp, err := h.catalog.Search(ctx, catalog.SearchRequest{Query: page.Form.Query, TopK: page.Form.TopK}, reqID)
	if err != nil {
		h.logger.Error(&reqID, "Search failed: %v", err)
		page.Error = err.Error()
		h.renderSearch(w, r, page)
		return
	}

	page.Results = resp.Results
	h.renderSearch(w, r, page)
}

func (h *Handler) renderIngest(w http.ResponseWriter, r *http.Request, page IngestPage) {
	h.render(w, r, "ingest.html", pageData{Title: "Ingest Product", Active: "ingest", Page: page})
}

func (h *Handler) renderSearch(w http.ResponseWriter, r *http.Request, page SearchPage) {
	page.MinTopK = 1
	page.MaxTopK = h.cfg.Search.MaxTopK
	h.render(w, r, "search.html", pageData{Title: "Search Products", Active: "search", Page: page})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	reqID := RequestID(r.Context())

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error(&reqID, "Failed to render %s: %v", name, err)
		httputils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error(&reqID, "Error sending response: %v", err)
	}
}
