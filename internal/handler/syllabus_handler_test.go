package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"study-toolkit/internal/domain"
)

type mockSyllabusService struct {
	info domain.CourseInfo
	err  error
	got  []byte
}

func (m *mockSyllabusService) Analyze(ctx context.Context, pdf []byte) (domain.CourseInfo, error) {
	m.got = pdf
	return m.info, m.err
}

func newUploadRequest(t *testing.T, target, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSyllabusHandler_AnalyzeSyllabus_OK(t *testing.T) {
	svc := &mockSyllabusService{info: domain.CourseInfo{
		CourseName: "Linear Algebra",
		Topics:     []string{"Matrices", "Eigenvalues"},
	}}
	handler := NewSyllabusHandler(svc, 50<<20, NewMockHandlerLogger())

	req := newUploadRequest(t, "/api/v1/syllabus", "syllabus.pdf", []byte("%PDF-1.4 syllabus"))

	rr := httptest.NewRecorder()
	handler.AnalyzeSyllabus(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var info domain.CourseInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if info.CourseName != "Linear Algebra" {
		t.Fatalf("expected course Linear Algebra, got %s", info.CourseName)
	}
	if len(info.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(info.Topics))
	}
	if string(svc.got) != "%PDF-1.4 syllabus" {
		t.Fatal("service did not receive the uploaded bytes")
	}
}

func TestSyllabusHandler_AnalyzeSyllabus_MissingFile(t *testing.T) {
	handler := NewSyllabusHandler(&mockSyllabusService{}, 50<<20, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/syllabus", nil)

	rr := httptest.NewRecorder()
	handler.AnalyzeSyllabus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestSyllabusHandler_AnalyzeSyllabus_RejectsNonPDF(t *testing.T) {
	handler := NewSyllabusHandler(&mockSyllabusService{}, 50<<20, NewMockHandlerLogger())

	req := newUploadRequest(t, "/api/v1/syllabus", "syllabus.docx", []byte("word doc"))

	rr := httptest.NewRecorder()
	handler.AnalyzeSyllabus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
