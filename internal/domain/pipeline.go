package domain

// SearchLink is one ranked result from the search collaborator.
type SearchLink struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchResult groups the PDF links found for one query. Transient, never persisted.
type SearchResult struct {
	Query string       `json:"query"`
	Links []SearchLink `json:"links"`
}

// DownloadedPDF describes one file retrieved during a pipeline run.
type DownloadedPDF struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	SourceURL string `json:"source_url"`
	Title     string `json:"title"`
	SizeBytes int64  `json:"size_bytes"`
}

// PracticeExam is the client-visible exam payload. When no PDFs could be
// downloaded, Questions is empty and Message explains why.
type PracticeExam struct {
	Course    string     `json:"course"`
	Questions []Question `json:"questions,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// PipelineRun aggregates the outcome of one end-to-end run, from syllabus
// upload to practice exam. It exists only for the duration of one request.
type PipelineRun struct {
	CourseInfo     CourseInfo      `json:"course_info"`
	SearchResults  []SearchResult  `json:"search_results"`
	DownloadedPDFs []DownloadedPDF `json:"downloaded_pdfs"`
	PracticeExam   *PracticeExam   `json:"practice_exam"`
}
