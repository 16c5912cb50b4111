package web

import (
	"io/fs"
	"net/http"
)

func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.HandleHome)
	mux.HandleFunc("GET /ingest", handler.HandleIngestPage)
	mux.HandleFunc("POST /ingest", handler.HandleIngest)
	mux.HandleFunc("POST /ingest/description", handler.HandleGenerateDescription)
	mux.HandleFunc("GET /search", handler.HandleSearchPage)
	mux.HandleFunc("POST /search", handler.HandleSearch)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
}
