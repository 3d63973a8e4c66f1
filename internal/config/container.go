package config

import (
	"context"
	"fmt"

	"study-toolkit/internal/domain"
	"study-toolkit/internal/repository"
	"study-toolkit/internal/service"
	"study-toolkit/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger
	Store  domain.QuestionStore

	SyllabusService domain.SyllabusService
	SearchService   domain.SearchService
	DownloadService domain.DownloadService
	PipelineService domain.PipelineService
	ExamService     domain.ExamService
}

// NewContainer creates a new dependency injection container. The context is
// used only for client initialization, not held afterwards.
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize the question store
	store, err := repository.NewQuestionStore(config.GetDatabasePath(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open question store: %w", err)
	}

	// Initialize the Gemini client (shared by syllabus analysis and
	// question extraction)
	geminiClient, err := service.NewGeminiClient(ctx, config.GetGoogleProject(), config.GetGoogleLocation())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	analyzer := service.NewGeminiAnalyzer(geminiClient, appLogger)

	// Initialize collaborators
	extractor := service.NewPDFExtractor(appLogger)
	searcher := service.NewSerpAPIClient(config.GetSearchAPIKey(), appLogger)
	fetcher := service.NewHTTPFetcher(appLogger)

	// Initialize services
	syllabusService := service.NewPDFSyllabusService(extractor, analyzer, store, appLogger)
	searchService := service.NewCourseSearchService(searcher, appLogger)
	downloadService := service.NewPDFDownloadService(fetcher, config.GetDownloadPath(), appLogger)
	examService := service.NewStoredExamService(store, appLogger)
	pipelineService := service.NewStudyPipelineService(
		syllabusService,
		searchService,
		downloadService,
		extractor,
		analyzer,
		store,
		appLogger,
		config.GetMaxDownloads(),
	)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		Store:           store,
		SyllabusService: syllabusService,
		SearchService:   searchService,
		DownloadService: downloadService,
		PipelineService: pipelineService,
		ExamService:     examService,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
