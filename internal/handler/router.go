package handler

import (
	"net/http"

	"study-toolkit/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"study-toolkit"}`))
	}).Methods("GET")

	maxFileSize := container.Config.GetMaxFileSize()

	// Initialize handlers
	syllabusHandler := NewSyllabusHandler(container.SyllabusService, maxFileSize, container.Logger)
	searchHandler := NewSearchHandler(container.SearchService, container.Logger)
	downloadHandler := NewDownloadHandler(container.DownloadService, container.Logger)
	examHandler := NewExamHandler(container.ExamService, container.Logger)
	pipelineHandler := NewPipelineHandler(container.PipelineService, maxFileSize, container.Logger)
	courseHandler := NewCourseHandler(container.Store, container.Logger)

	// Syllabus routes
	api.HandleFunc("/syllabus", syllabusHandler.AnalyzeSyllabus).Methods("POST")

	// Search routes
	api.HandleFunc("/search", searchHandler.SearchCourse).Methods("GET")

	// Download routes
	api.HandleFunc("/downloads", downloadHandler.DownloadPDF).Methods("POST")

	// Exam routes
	api.HandleFunc("/exams", examHandler.CreateExam).Methods("POST")

	// Pipeline routes
	api.HandleFunc("/pipeline", pipelineHandler.RunPipeline).Methods("POST")

	// Course catalog routes
	api.HandleFunc("/courses", courseHandler.ListCourses).Methods("GET")
	api.HandleFunc("/courses/{course}/topics", courseHandler.ListCourseTopics).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
