package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	linksByQuery map[string][]domain.SearchLink
	errByQuery   map[string]error
	calls        []string
}

func (m *mockSearcher) Search(ctx context.Context, query string, limit int) ([]domain.SearchLink, error) {
	m.calls = append(m.calls, query)
	if err := m.errByQuery[query]; err != nil {
		return nil, err
	}
	return m.linksByQuery[query], nil
}

func TestBuildQueries(t *testing.T) {
	queries := BuildQueries("Linear Algebra")
	assert.Equal(t, []string{"Linear Algebra Past Exams", "Linear Algebra Notes"}, queries)
}

func TestSearchCourse_FiltersNonPDFLinks(t *testing.T) {
	searcher := &mockSearcher{
		linksByQuery: map[string][]domain.SearchLink{
			"Calculus II Past Exams": {
				{Title: "Midterm", Link: "https://uni.edu/midterm.pdf"},
				{Title: "Course page", Link: "https://uni.edu/calculus"},
				{Title: "Final", Link: "https://uni.edu/final.PDF"},
			},
			"Calculus II Notes": {
				{Title: "Slides", Link: "https://uni.edu/slides.pptx"},
			},
		},
	}
	svc := NewCourseSearchService(searcher, mockLogger{})

	results, err := svc.SearchCourse(context.Background(), "Calculus II")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Calculus II Past Exams", results[0].Query)
	require.Len(t, results[0].Links, 2)
	assert.Equal(t, "https://uni.edu/midterm.pdf", results[0].Links[0].Link)
	assert.Equal(t, "https://uni.edu/final.PDF", results[0].Links[1].Link)

	assert.Equal(t, "Calculus II Notes", results[1].Query)
	assert.Empty(t, results[1].Links)
}

func TestSearchCourse_PartialResultsOnFailure(t *testing.T) {
	searcher := &mockSearcher{
		linksByQuery: map[string][]domain.SearchLink{
			"Calculus II Past Exams": {{Link: "https://uni.edu/exam.pdf"}},
		},
		errByQuery: map[string]error{
			"Calculus II Notes": errors.New("search API returned status 503"),
		},
	}
	svc := NewCourseSearchService(searcher, mockLogger{})

	results, err := svc.SearchCourse(context.Background(), "Calculus II")
	require.Error(t, err)
	require.Len(t, results, 1, "results from queries before the failure are kept")
	assert.Len(t, results[0].Links, 1)
}

func TestIsPDFLink(t *testing.T) {
	assert.True(t, IsPDFLink("https://uni.edu/exam.pdf"))
	assert.True(t, IsPDFLink("https://uni.edu/exam.PDF?session=1"))
	assert.False(t, IsPDFLink("https://uni.edu/exam.pdf.html"))
	assert.False(t, IsPDFLink("https://uni.edu/download?file=exam.pdf"), "query strings are not trusted")
	assert.False(t, IsPDFLink("://bad"))
}

func TestSerpAPIClient_ParsesOrganicResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "physics Past Exams", r.URL.Query().Get("q"))
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"organic_results":[
			{"title":"Exam","link":"https://uni.edu/exam.pdf","snippet":"past exam"},
			{"title":"Notes","link":"https://uni.edu/notes.pdf","snippet":"lecture notes"}
		]}`))
	}))
	defer server.Close()

	client := NewSerpAPIClient("test-key", mockLogger{})
	client.client = server.Client()
	endpoint := server.URL + "?q=physics+Past+Exams&engine=google&api_key=test-key"

	links, retryable, err := client.doSearch(context.Background(), endpoint, 10)
	require.NoError(t, err)
	assert.False(t, retryable)
	require.Len(t, links, 2)
	assert.Equal(t, "Exam", links[0].Title)
	assert.Equal(t, "https://uni.edu/exam.pdf", links[0].Link)
	assert.Equal(t, "past exam", links[0].Snippet)
}

func TestSerpAPIClient_ServerErrorsAreRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSerpAPIClient("test-key", mockLogger{})
	client.client = server.Client()

	_, retryable, err := client.doSearch(context.Background(), server.URL, 10)
	require.Error(t, err)
	assert.True(t, retryable)
}

func TestSerpAPIClient_ClientErrorsAreNotRetried(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewSerpAPIClient("bad-key", mockLogger{})
	client.client = server.Client()

	_, retryable, err := client.doSearch(context.Background(), server.URL, 10)
	require.Error(t, err)
	assert.False(t, retryable)
	assert.Equal(t, 1, hits)

	appErr := apperrors.NewSearchError("search failed", err)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
}
