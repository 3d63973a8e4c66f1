package domain

import "context"

// TextExtractor extracts plain text from PDF content. Pages with no
// extractable text contribute an empty string.
type TextExtractor interface {
	ExtractFromBytes(pdf []byte) (string, error)
	ExtractFromFile(path string) (string, error)
}

// SyllabusAnalyzer asks the generative-model collaborator for a course name
// and topic list given raw syllabus text.
type SyllabusAnalyzer interface {
	AnalyzeSyllabus(ctx context.Context, text string) (CourseInfo, error)
}

// QuestionExtractor asks the generative-model collaborator for candidate exam
// questions given extracted document text and course context.
type QuestionExtractor interface {
	ExtractQuestions(ctx context.Context, text, course, sourcePDF string) ([]Question, error)
}

// Searcher executes one query against the external search collaborator and
// returns ranked results.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchLink, error)
}

// Fetcher retrieves a URL over HTTP and writes the body to destPath,
// returning the byte count written.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) (int64, error)
}

// QuestionStore is the persistence, dedup, and query engine for courses and
// questions. It exclusively owns the persisted tables.
type QuestionStore interface {
	UpsertCourse(name string, topics []string) error
	InsertQuestions(qs []Question) (int, error)
	FindQuestions(course string, topics []string) ([]Question, error)
	ListDistinctCourses() ([]string, error)
	ListCourseTopics(course string) ([]string, error)
	Close() error
}

// SyllabusService turns uploaded syllabus bytes into a course analysis and
// persists the course row.
type SyllabusService interface {
	Analyze(ctx context.Context, pdf []byte) (CourseInfo, error)
}

// SearchService finds candidate exam PDFs for a course. A search failure
// after partial results still returns what was found.
type SearchService interface {
	SearchCourse(ctx context.Context, course string) ([]SearchResult, error)
}

// DownloadService fetches one URL into local storage under the given filename.
type DownloadService interface {
	Download(ctx context.Context, url, fileName string) (*DownloadedPDF, error)
}

// PipelineService drives one end-to-end run. It always returns a best-effort
// PipelineRun; stage failures degrade rather than abort.
type PipelineService interface {
	Run(ctx context.Context, syllabusPDF []byte, originalName string) *PipelineRun
}

// ExamService builds a randomized practice exam from stored questions.
type ExamService interface {
	CreateExam(course string, topics []string, numQuestions int) (*PracticeExam, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetDownloadPath() string
	GetDatabasePath() string
	GetMaxFileSize() int64
	GetMaxDownloads() int
	GetLogLevel() string
	GetGoogleProject() string
	GetGoogleLocation() string
	GetSearchAPIKey() string
}
