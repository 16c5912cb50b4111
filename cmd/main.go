package main

import (
	"net/http"

	"github.com/wgomg/semprod/internal/catalog"
	"github.com/wgomg/semprod/internal/config"
	"github.com/wgomg/semprod/internal/metrics"
	"github.com/wgomg/semprod/internal/utils"
	"github.com/wgomg/semprod/internal/utils/httputils"
	"github.com/wgomg/semprod/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := utils.NewLogger("error", false)
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log := utils.NewLogger("error", cfg.App.RawBodyLog)
		log.Fatal("Invalid configuration: ", err)
	}

	logger := utils.NewLogger(cfg.App.LogLevel, cfg.App.RawBodyLog)
	logger.Info(nil, "Starting Semantic Product Retrieval front end")
	logger.Info(nil, "Environment: %s", cfg.App.Env)
	logger.Info(nil, "Log level: %s", cfg.App.LogLevel)
	logger.Info(nil, "Catalog backend: %s", cfg.Catalog.URL)

	catalogClient, err := catalog.NewClient(cfg, logger)
	if err != nil {
		logger.Error(nil, "Failed to create catalog client: %v", err)
		logger.Fatal("Missing required configuration")
	}

	pages, err := web.NewHandler(logger, catalogClient, cfg)
	if err != nil {
		logger.Error(nil, "Failed to load page templates: %v", err)
		logger.Fatal("Failed to initialize web handler")
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = httputils.JSONResponse(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": catalogClient.BaseURL(),
		})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	web.RegisterRoutes(mux, pages)

	logger.Info(nil, "Starting server on port %s", cfg.App.ServerPort)
	logger.Info(nil, "Endpoints:")
	logger.Info(nil, "  GET  /")
	logger.Info(nil, "  GET  /ingest, POST /ingest, POST /ingest/description")
	logger.Info(nil, "  GET  /search, POST /search")
	logger.Info(nil, "  GET  /health, GET /metrics")
	logger.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.App.ServerPort, web.WithRequestID(web.WithAccessLog(logger, mux))))
}
