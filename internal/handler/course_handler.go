package handler

import (
	"net/http"
	"strings"

	"study-toolkit/internal/domain"

	"github.com/gorilla/mux"
)

// CourseHandler serves the stored course catalog
type CourseHandler struct {
	store  domain.QuestionStore
	logger domain.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(store domain.QuestionStore, logger domain.Logger) *CourseHandler {
	return &CourseHandler{store: store, logger: logger}
}

// ListCourses returns every distinct course name known to the store.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListDistinctCourses()
	if err != nil {
		h.logger.Error("Failed to list courses", err)
		writeServiceError(w, err)
		return
	}
	if courses == nil {
		courses = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// ListCourseTopics returns the topics recorded for one course.
func (h *CourseHandler) ListCourseTopics(w http.ResponseWriter, r *http.Request) {
	course := strings.TrimSpace(mux.Vars(r)["course"])
	if course == "" {
		writeError(w, http.StatusBadRequest, "Course is required")
		return
	}

	topics, err := h.store.ListCourseTopics(course)
	if err != nil {
		h.logger.Error("Failed to list topics", err, "course", course)
		writeServiceError(w, err)
		return
	}
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"course": course, "topics": topics})
}
