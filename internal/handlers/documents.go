package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/services"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

type DocumentHandler struct {
	service       services.DocumentService
	uploadDir     string
	maxUploadSize int64
	logger        *utils.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewDocumentHandler serves the document endpoints. Uploads are spooled to
// uploadDir; maxUploadSize of zero disables the server-side cap.
func NewDocumentHandler(service services.DocumentService, uploadDir string, maxUploadSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:       service,
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	form, cleanup, err := h.readUpload(w, r)
	defer cleanup()
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp, err := h.service.Analyze(r.Context(), form.Document)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) AskDocument(w http.ResponseWriter, r *http.Request) {
	form, cleanup, err := h.readUpload(w, r)
	defer cleanup()
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp, err := h.service.Ask(r.Context(), &models.AskRequest{
		Question:  form.Value("question"),
		SessionID: form.Value("sessionId"),
		Document:  form.Document,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid report request body", "error", err)
		h.respondError(w, utils.NewMissingInputError("Missing required report data."))
		return
	}

	report, err := h.service.RenderReport(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": report.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Data); err != nil {
		h.logger.Error("Failed to write report", "error", err, "filename", report.Filename)
	}
}

func (h *DocumentHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.EndSession(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "Internal server error"}
	status := http.StatusInternalServerError

	if appErr, ok := utils.AsAppError(err); ok {
		status = appErr.StatusCode
		resp.Error = appErr.Message
		resp.Details = appErr.Details
		if status == http.StatusInternalServerError && resp.Details == "" {
			resp.Details = "An internal server error occurred."
		}
	} else {
		resp.Details = "An internal server error occurred."
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err)
	} else {
		h.logger.Warn("Request rejected", "status", status, "error", resp.Error)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
