package handler

import (
	"encoding/json"
	"net/http"

	"study-toolkit/internal/domain"
)

// ExamHandler handles practice exam requests
type ExamHandler struct {
	examService domain.ExamService
	logger      domain.Logger
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examService domain.ExamService, logger domain.Logger) *ExamHandler {
	return &ExamHandler{examService: examService, logger: logger}
}

type examRequest struct {
	Course       string   `json:"course"`
	Topics       []string `json:"topics"`
	NumQuestions int      `json:"num_questions"`
}

// CreateExam samples a randomized practice exam from the stored question bank.
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exam, err := h.examService.CreateExam(req.Course, req.Topics, req.NumQuestions)
	if err != nil {
		h.logger.Error("Exam creation failed", err, "course", req.Course)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exam)
}
