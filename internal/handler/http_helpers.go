// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps service-layer errors onto HTTP responses. Typed
// application errors carry their own status; the no-questions case gets a 404
// that also lists the courses the store does know about.
func writeServiceError(w http.ResponseWriter, err error) {
	var noQuestions *domain.NoQuestionsError
	if errors.As(err, &noQuestions) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":         noQuestions.Error(),
			"known_courses": noQuestions.KnownCourses,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrCourseRequired),
		errors.Is(err, domain.ErrDownloadURLEmpty),
		errors.Is(err, domain.ErrInvalidFile):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, apperrors.GetStatusCode(err), err.Error())
	}
}
