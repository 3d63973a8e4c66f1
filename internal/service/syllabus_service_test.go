package service

import (
	"context"
	"errors"
	"testing"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	info domain.CourseInfo
	err  error
}

func (s *stubAnalyzer) AnalyzeSyllabus(ctx context.Context, text string) (domain.CourseInfo, error) {
	return s.info, s.err
}

type failingExtractor struct{}

func (failingExtractor) ExtractFromBytes(pdf []byte) (string, error) {
	return "", errors.New("not a pdf")
}

func (failingExtractor) ExtractFromFile(path string) (string, error) {
	return "", errors.New("not a pdf")
}

func TestSyllabusAnalyze_PersistsCourse(t *testing.T) {
	store := &mockQuestionStore{}
	analyzer := &stubAnalyzer{info: domain.CourseInfo{
		CourseName: "Linear Algebra",
		Topics:     []string{"Matrices", "Eigenvalues"},
	}}
	svc := NewPDFSyllabusService(&mockTextExtractor{}, analyzer, store, mockLogger{})

	info, err := svc.Analyze(context.Background(), []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", info.CourseName)
	assert.Equal(t, []string{"Matrices", "Eigenvalues"}, store.upserted["Linear Algebra"])
}

func TestSyllabusAnalyze_UnknownCourseIsNotPersisted(t *testing.T) {
	store := &mockQuestionStore{}
	analyzer := &stubAnalyzer{info: domain.CourseInfo{CourseName: domain.UnknownCourse}}
	svc := NewPDFSyllabusService(&mockTextExtractor{}, analyzer, store, mockLogger{})

	info, err := svc.Analyze(context.Background(), []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownCourse, info.CourseName)
	assert.Empty(t, store.upserted, "placeholder courses never reach the store")
}

func TestSyllabusAnalyze_ExtractionFailure(t *testing.T) {
	svc := NewPDFSyllabusService(failingExtractor{}, &stubAnalyzer{}, &mockQuestionStore{}, mockLogger{})

	_, err := svc.Analyze(context.Background(), []byte("garbage"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
}

func TestSyllabusAnalyze_AnalyzerFailure(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("model unavailable")}
	svc := NewPDFSyllabusService(&mockTextExtractor{}, analyzer, &mockQuestionStore{}, mockLogger{})

	_, err := svc.Analyze(context.Background(), []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
}
