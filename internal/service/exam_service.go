package service

import (
	"strings"

	"study-toolkit/internal/domain"
	"study-toolkit/internal/repository"
	apperrors "study-toolkit/pkg/errors"
)

const defaultExamSize = 20

// StoredExamService implements domain.ExamService over the question store.
type StoredExamService struct {
	store  domain.QuestionStore
	logger domain.Logger
}

// NewStoredExamService creates a new exam service
func NewStoredExamService(store domain.QuestionStore, logger domain.Logger) *StoredExamService {
	return &StoredExamService{store: store, logger: logger}
}

// CreateExam samples a randomized practice exam from the stored questions
// matching course (case-insensitive substring) and the optional topic list.
// Zero matches yield a NoQuestionsError carrying the known course names.
func (s *StoredExamService) CreateExam(course string, topics []string, numQuestions int) (*domain.PracticeExam, error) {
	if strings.TrimSpace(course) == "" {
		return nil, domain.ErrCourseRequired
	}
	if numQuestions <= 0 {
		numQuestions = defaultExamSize
	}

	questions, err := s.store.FindQuestions(course, topics)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query questions", err)
	}

	if len(questions) == 0 {
		known, err := s.store.ListDistinctCourses()
		if err != nil {
			s.logger.Warn("Failed to list courses for diagnostic", "error", err)
		}
		return nil, &domain.NoQuestionsError{Course: course, KnownCourses: known}
	}

	sampled := repository.SampleQuestions(questions, numQuestions)

	s.logger.Info("Practice exam created", "course", course, "matched", len(questions), "sampled", len(sampled))

	return &domain.PracticeExam{
		Course:    course,
		Questions: sampled,
	}, nil
}
