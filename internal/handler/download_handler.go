package handler

import (
	"encoding/json"
	"net/http"

	"study-toolkit/internal/domain"
)

// DownloadHandler handles single PDF download requests
type DownloadHandler struct {
	downloadService domain.DownloadService
	logger          domain.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadService domain.DownloadService, logger domain.Logger) *DownloadHandler {
	return &DownloadHandler{downloadService: downloadService, logger: logger}
}

type downloadRequest struct {
	URL      string `json:"url"`
	FileName string `json:"filename"`
}

// DownloadPDF fetches one URL into the download directory.
func (h *DownloadHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pdf, err := h.downloadService.Download(r.Context(), req.URL, req.FileName)
	if err != nil {
		h.logger.Error("Download failed", err, "url", req.URL)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pdf)
}
