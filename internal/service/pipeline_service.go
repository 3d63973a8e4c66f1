package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"study-toolkit/internal/domain"
	"study-toolkit/internal/repository"

	"github.com/google/uuid"
)

const (
	// DefaultMaxDownloads caps successful PDF downloads per run.
	DefaultMaxDownloads = 3

	// examPayloadSize bounds the client-visible question list; everything
	// extracted is still persisted.
	examPayloadSize = 20

	noDownloadsMessage = "No PDFs downloaded. No matching exam documents were found for this course; try again with a different syllabus or course name."
)

// StudyPipelineService implements domain.PipelineService: one sequential,
// best-effort run of syllabus analysis, web search, bounded download,
// question extraction, and persistence. Stage failures degrade to partial
// results; the run itself never fails once the upload is staged.
type StudyPipelineService struct {
	syllabus     domain.SyllabusService
	search       domain.SearchService
	downloads    domain.DownloadService
	extractor    domain.TextExtractor
	questions    domain.QuestionExtractor
	store        domain.QuestionStore
	logger       domain.Logger
	maxDownloads int
}

// NewStudyPipelineService creates a new pipeline service. maxDownloads <= 0
// falls back to the default cap.
func NewStudyPipelineService(
	syllabus domain.SyllabusService,
	search domain.SearchService,
	downloads domain.DownloadService,
	extractor domain.TextExtractor,
	questions domain.QuestionExtractor,
	store domain.QuestionStore,
	logger domain.Logger,
	maxDownloads int,
) *StudyPipelineService {
	if maxDownloads <= 0 {
		maxDownloads = DefaultMaxDownloads
	}
	return &StudyPipelineService{
		syllabus:     syllabus,
		search:       search,
		downloads:    downloads,
		extractor:    extractor,
		questions:    questions,
		store:        store,
		logger:       logger,
		maxDownloads: maxDownloads,
	}
}

// Run drives one end-to-end pipeline invocation and returns the aggregated
// outcome. originalName is the uploaded syllabus filename, used only for logs.
func (s *StudyPipelineService) Run(ctx context.Context, syllabusPDF []byte, originalName string) *domain.PipelineRun {
	runToken := uuid.New().String()[:8]
	run := &domain.PipelineRun{
		SearchResults:  []domain.SearchResult{},
		DownloadedPDFs: []domain.DownloadedPDF{},
	}

	s.logger.Info("Pipeline run started", "run", runToken, "syllabus", originalName)

	run.CourseInfo = s.analyzeSyllabus(ctx, syllabusPDF)
	run.SearchResults = s.searchCourse(ctx, run.CourseInfo.CourseName)
	run.DownloadedPDFs = s.downloadPDFs(ctx, runToken, run.SearchResults)

	if len(run.DownloadedPDFs) == 0 {
		run.PracticeExam = &domain.PracticeExam{
			Course:  run.CourseInfo.CourseName,
			Message: noDownloadsMessage,
		}
		s.logger.Info("Pipeline run finished without downloads", "run", runToken)
		return run
	}

	extracted := s.extractQuestions(ctx, run.CourseInfo.CourseName, run.DownloadedPDFs)
	run.PracticeExam = s.persistAndSample(run.CourseInfo.CourseName, extracted)

	s.logger.Info("Pipeline run finished",
		"run", runToken,
		"course", run.CourseInfo.CourseName,
		"downloads", len(run.DownloadedPDFs),
		"questions", len(extracted),
	)
	return run
}

// analyzeSyllabus degrades every analysis failure to the Unknown Course
// placeholder; the pipeline always proceeds.
func (s *StudyPipelineService) analyzeSyllabus(ctx context.Context, pdf []byte) domain.CourseInfo {
	info, err := s.syllabus.Analyze(ctx, pdf)
	if err != nil {
		s.logger.Warn("Syllabus analysis failed, continuing with defaults", "error", err)
		return domain.CourseInfo{CourseName: domain.UnknownCourse, Topics: []string{}}
	}
	return info
}

// searchCourse keeps whatever links were found before a search failure.
func (s *StudyPipelineService) searchCourse(ctx context.Context, course string) []domain.SearchResult {
	results, err := s.search.SearchCourse(ctx, course)
	if err != nil {
		s.logger.Warn("Search stage ended early, using partial results", "course", course, "error", err)
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	return results
}

// downloadPDFs walks discovered links in query order, link order, and stops
// as soon as maxDownloads files have been retrieved. Failed downloads are
// skipped and do not count against the cap.
func (s *StudyPipelineService) downloadPDFs(ctx context.Context, runToken string, results []domain.SearchResult) []domain.DownloadedPDF {
	downloaded := make([]domain.DownloadedPDF, 0, s.maxDownloads)
	attempt := 0

	for _, result := range results {
		for _, link := range result.Links {
			if len(downloaded) >= s.maxDownloads {
				return downloaded
			}
			attempt++

			fileName := fmt.Sprintf("%s_%02d_%s", runToken, attempt, baseNameFromURL(link.Link))
			pdf, err := s.downloads.Download(ctx, link.Link, fileName)
			if err != nil {
				s.logger.Warn("Download failed, skipping link", "url", link.Link, "error", err)
				continue
			}
			pdf.Title = link.Title
			downloaded = append(downloaded, *pdf)
		}
	}
	return downloaded
}

// extractQuestions re-extracts text from each downloaded file and asks the
// model for candidate questions. Per-file failures are skipped.
func (s *StudyPipelineService) extractQuestions(ctx context.Context, course string, pdfs []domain.DownloadedPDF) []domain.Question {
	var all []domain.Question
	for _, pdf := range pdfs {
		text, err := s.extractor.ExtractFromFile(pdf.Path)
		if err != nil {
			s.logger.Warn("Text extraction failed, skipping file", "file", pdf.Filename, "error", err)
			continue
		}

		questions, err := s.questions.ExtractQuestions(ctx, text, course, pdf.Filename)
		if err != nil {
			s.logger.Warn("Question extraction failed, skipping file", "file", pdf.Filename, "error", err)
			continue
		}
		all = append(all, questions...)
	}
	return all
}

// persistAndSample writes every extracted question to the store, then builds
// the client payload from a shuffled copy truncated to the exam size.
func (s *StudyPipelineService) persistAndSample(course string, questions []domain.Question) *domain.PracticeExam {
	if len(questions) == 0 {
		return &domain.PracticeExam{
			Course:  course,
			Message: "No questions could be extracted from the downloaded PDFs.",
		}
	}

	inserted, err := s.store.InsertQuestions(questions)
	if err != nil {
		// Persistence failure loses durability, not the run: the client
		// still gets the extracted questions.
		s.logger.Error("Failed to persist extracted questions", err, "count", len(questions))
	} else {
		s.logger.Info("Persisted extracted questions", "attempted", len(questions), "added", inserted)
	}

	return &domain.PracticeExam{
		Course:    course,
		Questions: repository.SampleQuestions(questions, examPayloadSize),
	}
}

// baseNameFromURL derives a safe local filename from a link, defaulting the
// extension to .pdf.
func baseNameFromURL(rawURL string) string {
	name := "document.pdf"
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			name = base
		}
	}
	name = SanitizeFilename(name)
	if name == "" {
		name = "document.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
