package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"study-toolkit/internal/domain"
)

// SyllabusHandler handles syllabus upload and analysis requests
type SyllabusHandler struct {
	syllabusService domain.SyllabusService
	maxFileSize     int64
	logger          domain.Logger
}

// NewSyllabusHandler creates a new syllabus handler
func NewSyllabusHandler(syllabusService domain.SyllabusService, maxFileSize int64, logger domain.Logger) *SyllabusHandler {
	return &SyllabusHandler{
		syllabusService: syllabusService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// AnalyzeSyllabus handles a multipart syllabus upload and returns the derived
// course name and topic list.
func (h *SyllabusHandler) AnalyzeSyllabus(w http.ResponseWriter, r *http.Request) {
	pdf, name, ok := readPDFUpload(w, r, h.maxFileSize)
	if !ok {
		return
	}

	info, err := h.syllabusService.Analyze(r.Context(), pdf)
	if err != nil {
		h.logger.Error("Syllabus analysis failed", err, "file", name)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// readPDFUpload stages the "file" part of a multipart request into memory.
// It writes the error response itself and reports ok=false on failure.
func readPDFUpload(w http.ResponseWriter, r *http.Request, maxFileSize int64) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return nil, "", false
	}
	defer file.Close()

	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." {
		originalName = "document.pdf"
	}

	if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		writeError(w, http.StatusBadRequest, "Unsupported file type. Only PDF (.pdf) uploads are accepted.")
		return nil, "", false
	}

	if header.Size > maxFileSize {
		writeError(w, http.StatusBadRequest, "File too large.")
		return nil, "", false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return nil, "", false
	}

	return data, originalName, true
}
