package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/speedminds/internal/config"
	"github.com/BerylCAtieno/speedminds/internal/handlers"
	"github.com/BerylCAtieno/speedminds/internal/middleware"
	"github.com/BerylCAtieno/speedminds/internal/services"
	"github.com/BerylCAtieno/speedminds/internal/utils"
	"github.com/BerylCAtieno/speedminds/internal/web"
)

func NewRouter(docService services.DocumentService, cfg *config.Config, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	docHandler := handlers.NewDocumentHandler(docService, cfg.UploadDir, cfg.MaxUploadSize, logger)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", docHandler.Health).Methods(http.MethodGet)

	api.HandleFunc("/analyze", docHandler.AnalyzeDocument).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/ask-document", docHandler.AskDocument).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/download-report", docHandler.DownloadReport).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", docHandler.DeleteSession).Methods(http.MethodDelete, http.MethodOptions)

	// UI
	r.PathPrefix("/").Handler(web.Handler()).Methods(http.MethodGet, http.MethodHead)

	return r
}
