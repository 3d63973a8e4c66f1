package handler

import (
	"net/http"

	"study-toolkit/internal/domain"
)

// PipelineHandler handles end-to-end pipeline runs
type PipelineHandler struct {
	pipelineService domain.PipelineService
	maxFileSize     int64
	logger          domain.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(pipelineService domain.PipelineService, maxFileSize int64, logger domain.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipelineService: pipelineService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// RunPipeline stages the uploaded syllabus and drives one full pipeline run:
// analysis, search, bounded download, question extraction, persistence, and a
// sampled practice exam. Only a failure to stage the upload is an error; every
// later stage degrades to partial results inside the run report.
func (h *PipelineHandler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	pdf, name, ok := readPDFUpload(w, r, h.maxFileSize)
	if !ok {
		return
	}

	run := h.pipelineService.Run(r.Context(), pdf, name)
	writeJSON(w, http.StatusOK, run)
}
