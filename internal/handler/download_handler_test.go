package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"study-toolkit/internal/domain"
)

type mockDownloadService struct {
	pdf *domain.DownloadedPDF
	err error
}

func (m *mockDownloadService) Download(ctx context.Context, url, fileName string) (*domain.DownloadedPDF, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pdf, nil
}

func TestDownloadHandler_DownloadPDF_OK(t *testing.T) {
	svc := &mockDownloadService{pdf: &domain.DownloadedPDF{
		Filename:  "exam.pdf",
		Path:      "/downloads/exam.pdf",
		SourceURL: "https://uni.edu/exam.pdf",
		SizeBytes: 1024,
	}}
	handler := NewDownloadHandler(svc, NewMockHandlerLogger())

	body := strings.NewReader(`{"url":"https://uni.edu/exam.pdf","filename":"exam.pdf"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/downloads", body)

	rr := httptest.NewRecorder()
	handler.DownloadPDF(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	var pdf domain.DownloadedPDF
	if err := json.Unmarshal(rr.Body.Bytes(), &pdf); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pdf.SizeBytes != 1024 {
		t.Fatalf("expected size 1024, got %d", pdf.SizeBytes)
	}
}

func TestDownloadHandler_DownloadPDF_EmptyURL(t *testing.T) {
	svc := &mockDownloadService{err: domain.ErrDownloadURLEmpty}
	handler := NewDownloadHandler(svc, NewMockHandlerLogger())

	body := strings.NewReader(`{"url":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/downloads", body)

	rr := httptest.NewRecorder()
	handler.DownloadPDF(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestDownloadHandler_DownloadPDF_BadBody(t *testing.T) {
	handler := NewDownloadHandler(&mockDownloadService{}, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/downloads", strings.NewReader("{"))

	rr := httptest.NewRecorder()
	handler.DownloadPDF(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
