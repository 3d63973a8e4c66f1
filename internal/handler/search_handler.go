package handler

import (
	"net/http"
	"strings"

	"study-toolkit/internal/domain"
)

// SearchHandler handles course exam search requests
type SearchHandler struct {
	searchService domain.SearchService
	logger        domain.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService domain.SearchService, logger domain.Logger) *SearchHandler {
	return &SearchHandler{searchService: searchService, logger: logger}
}

// SearchCourse runs the fixed query set for a course. When a query fails
// mid-run the links found so far are still returned, with the failure noted.
func (h *SearchHandler) SearchCourse(w http.ResponseWriter, r *http.Request) {
	course := strings.TrimSpace(r.URL.Query().Get("course"))
	if course == "" {
		writeError(w, http.StatusBadRequest, "course query parameter is required")
		return
	}

	results, err := h.searchService.SearchCourse(r.Context(), course)
	if err != nil && len(results) == 0 {
		h.logger.Error("Search failed", err, "course", course)
		writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"course":  course,
		"results": results,
	}
	if err != nil {
		response["warning"] = err.Error()
	}
	writeJSON(w, http.StatusOK, response)
}
