package service

import (
	"context"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"
)

// PDFSyllabusService implements domain.SyllabusService: it extracts text from
// the uploaded syllabus, derives the course analysis, and persists the course
// row (overwriting topics for a course that was analyzed before).
type PDFSyllabusService struct {
	extractor domain.TextExtractor
	analyzer  domain.SyllabusAnalyzer
	store     domain.QuestionStore
	logger    domain.Logger
}

// NewPDFSyllabusService creates a new syllabus service
func NewPDFSyllabusService(
	extractor domain.TextExtractor,
	analyzer domain.SyllabusAnalyzer,
	store domain.QuestionStore,
	logger domain.Logger,
) *PDFSyllabusService {
	return &PDFSyllabusService{
		extractor: extractor,
		analyzer:  analyzer,
		store:     store,
		logger:    logger,
	}
}

// Analyze extracts text from the syllabus PDF and asks the model for course
// name and topics. A failed course upsert is logged, not returned: the
// analysis itself is still usable.
func (s *PDFSyllabusService) Analyze(ctx context.Context, pdf []byte) (domain.CourseInfo, error) {
	text, err := s.extractor.ExtractFromBytes(pdf)
	if err != nil {
		return domain.CourseInfo{}, apperrors.NewExtractionError("failed to extract syllabus text", err)
	}

	info, err := s.analyzer.AnalyzeSyllabus(ctx, text)
	if err != nil {
		return domain.CourseInfo{}, apperrors.NewExtractionError("failed to analyze syllabus", err)
	}

	if info.CourseName != "" && info.CourseName != domain.UnknownCourse {
		if err := s.store.UpsertCourse(info.CourseName, info.Topics); err != nil {
			s.logger.Error("Failed to persist course", err, "course", info.CourseName)
		}
	}

	s.logger.Info("Syllabus analyzed", "course", info.CourseName, "topics", len(info.Topics))
	return info, nil
}
