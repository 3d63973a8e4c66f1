package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"study-toolkit/internal/domain"
)

type mockExamService struct {
	exam *domain.PracticeExam
	err  error
}

func (m *mockExamService) CreateExam(course string, topics []string, numQuestions int) (*domain.PracticeExam, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.exam, nil
}

func TestExamHandler_CreateExam_OK(t *testing.T) {
	svc := &mockExamService{exam: &domain.PracticeExam{
		Course: "Linear Algebra",
		Questions: []domain.Question{
			{QuestionText: "Compute the determinant of A.", Course: "Linear Algebra"},
		},
	}}
	handler := NewExamHandler(svc, NewMockHandlerLogger())

	body := strings.NewReader(`{"course":"Linear Algebra","num_questions":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", body)

	rr := httptest.NewRecorder()
	handler.CreateExam(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var exam domain.PracticeExam
	if err := json.Unmarshal(rr.Body.Bytes(), &exam); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if exam.Course != "Linear Algebra" {
		t.Fatalf("expected course Linear Algebra, got %s", exam.Course)
	}
	if len(exam.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(exam.Questions))
	}
}

func TestExamHandler_CreateExam_NoQuestionsIs404(t *testing.T) {
	svc := &mockExamService{err: &domain.NoQuestionsError{
		Course:       "Organic Chemistry",
		KnownCourses: []string{"Linear Algebra", "Calculus II"},
	}}
	handler := NewExamHandler(svc, NewMockHandlerLogger())

	body := strings.NewReader(`{"course":"Organic Chemistry"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", body)

	rr := httptest.NewRecorder()
	handler.CreateExam(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	var resp struct {
		Error        string   `json:"error"`
		KnownCourses []string `json:"known_courses"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error message")
	}
	if len(resp.KnownCourses) != 2 {
		t.Fatalf("expected 2 known courses, got %d", len(resp.KnownCourses))
	}
}

func TestExamHandler_CreateExam_EmptyCourseIs400(t *testing.T) {
	svc := &mockExamService{err: domain.ErrCourseRequired}
	handler := NewExamHandler(svc, NewMockHandlerLogger())

	body := strings.NewReader(`{"course":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", body)

	rr := httptest.NewRecorder()
	handler.CreateExam(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestExamHandler_CreateExam_BadBody(t *testing.T) {
	handler := NewExamHandler(&mockExamService{}, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", strings.NewReader("not json"))

	rr := httptest.NewRecorder()
	handler.CreateExam(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
