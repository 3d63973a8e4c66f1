package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"
)

const (
	searchBaseURL  = "https://serpapi.com/search"
	searchTimeout  = 30 * time.Second
	searchMaxLinks = 10
	retryBackoff   = 500 * time.Millisecond
)

// SerpAPIClient implements domain.Searcher against the SerpAPI Google engine.
// Every call gets one retry with backoff on transport errors and 5xx.
type SerpAPIClient struct {
	apiKey string
	client *http.Client
	logger domain.Logger
}

// NewSerpAPIClient creates a new search client
func NewSerpAPIClient(apiKey string, logger domain.Logger) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: searchTimeout},
		logger: logger,
	}
}

// Search executes one query and returns up to limit ranked results.
func (c *SerpAPIClient) Search(ctx context.Context, query string, limit int) ([]domain.SearchLink, error) {
	if limit <= 0 {
		limit = searchMaxLinks
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(limit))
	params.Set("api_key", c.apiKey)
	endpoint := searchBaseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, apperrors.NewSearchError("search cancelled", ctx.Err())
			}
		}

		links, retryable, err := c.doSearch(ctx, endpoint, limit)
		if err == nil {
			return links, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Warn("Search request failed, retrying", "query", query, "error", err)
	}

	return nil, apperrors.NewSearchError(fmt.Sprintf("search failed for query %q", query), lastErr)
}

func (c *SerpAPIClient) doSearch(ctx context.Context, endpoint string, limit int) ([]domain.SearchLink, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var result struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, fmt.Errorf("failed to decode search response: %w", err)
	}

	links := make([]domain.SearchLink, 0, len(result.OrganicResults))
	for _, r := range result.OrganicResults {
		if len(links) >= limit {
			break
		}
		links = append(links, domain.SearchLink{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return links, false, nil
}

// CourseSearchService implements domain.SearchService: it issues the two
// fixed queries for a course and keeps only links whose URL path ends in .pdf.
type CourseSearchService struct {
	searcher domain.Searcher
	logger   domain.Logger
}

// NewCourseSearchService creates a new course search service
func NewCourseSearchService(searcher domain.Searcher, logger domain.Logger) *CourseSearchService {
	return &CourseSearchService{searcher: searcher, logger: logger}
}

// BuildQueries returns the fixed query set for a course.
func BuildQueries(course string) []string {
	return []string{
		fmt.Sprintf("%s Past Exams", course),
		fmt.Sprintf("%s Notes", course),
	}
}

// SearchCourse runs the fixed queries in order. A failing query stops further
// queries for this run but keeps whatever was already found; the error is
// returned alongside the partial results.
func (s *CourseSearchService) SearchCourse(ctx context.Context, course string) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	for _, query := range BuildQueries(course) {
		links, err := s.searcher.Search(ctx, query, searchMaxLinks)
		if err != nil {
			s.logger.Warn("Search query failed, keeping partial results", "query", query, "error", err)
			return results, err
		}
		results = append(results, domain.SearchResult{Query: query, Links: FilterPDFLinks(links)})
	}
	return results, nil
}

// FilterPDFLinks keeps links whose URL path ends in .pdf. The core only
// trusts the path suffix, not content types or query strings.
func FilterPDFLinks(links []domain.SearchLink) []domain.SearchLink {
	filtered := make([]domain.SearchLink, 0, len(links))
	for _, l := range links {
		if IsPDFLink(l.Link) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// IsPDFLink reports whether the URL's path ends in .pdf (case-insensitive).
func IsPDFLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}
