package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"study-toolkit/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

const (
	geminiModel = "gemini-2.0-flash-001"

	// Keep prompts bounded; past-exam PDFs can run to hundreds of pages.
	maxPromptChars = 60000
)

// GeminiAnalyzer implements domain.SyllabusAnalyzer and domain.QuestionExtractor
// on top of a shared Vertex AI client. The client is created once at startup
// and injected, not reconstructed per call.
type GeminiAnalyzer struct {
	client *genai.Client
	logger domain.Logger
}

// NewGeminiClient creates the process-wide Vertex AI client.
func NewGeminiClient(ctx context.Context, projectID, location string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return client, nil
}

// NewGeminiAnalyzer creates a new analyzer backed by the shared client.
func NewGeminiAnalyzer(client *genai.Client, logger domain.Logger) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client, logger: logger}
}

// AnalyzeSyllabus asks the model for a descriptive course name and topic list.
// Malformed model output is returned as an error so the caller can degrade.
func (g *GeminiAnalyzer) AnalyzeSyllabus(ctx context.Context, text string) (domain.CourseInfo, error) {
	if strings.TrimSpace(text) == "" {
		return domain.CourseInfo{}, domain.ErrEmptyDocument
	}

	prompt := fmt.Sprintf(`Analyze the following course syllabus and extract:
1. The course name: a short descriptive name for the subject, not a course code.
2. The main topics covered, as a list of short strings (at most 3 words each).

Format your response as JSON with keys:
- course_name (string)
- topics (array of strings)

Syllabus text:
%s`, truncate(text, maxPromptChars))

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return domain.CourseInfo{}, err
	}

	var info domain.CourseInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		g.logger.Warn("Failed to parse syllabus analysis", "error", err, "raw_len", len(raw))
		return domain.CourseInfo{}, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}
	if info.CourseName == "" {
		info.CourseName = domain.UnknownCourse
	}
	if info.Topics == nil {
		info.Topics = []string{}
	}
	return info, nil
}

// ExtractQuestions asks the model for 5-10 candidate exam questions from
// extracted document text, tagged with course context and provenance.
func (g *GeminiAnalyzer) ExtractQuestions(ctx context.Context, text, course, sourcePDF string) ([]domain.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	prompt := fmt.Sprintf(`The following text was extracted from a past exam or lecture notes for the course %q.
Extract between 5 and 10 complete exam questions from it. For each question provide:
- question (string): the full question text
- topic (string): the topic the question covers
- difficulty (string): one of "easy", "medium", "hard"

Format your response as JSON with a single key:
- questions (array of objects with keys question, topic, difficulty)

Document text:
%s`, course, truncate(text, maxPromptChars))

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []struct {
			Question   string `json:"question"`
			Topic      string `json:"topic"`
			Difficulty string `json:"difficulty"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		g.logger.Warn("Failed to parse question extraction", "error", err, "source_pdf", sourcePDF)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}

	now := time.Now().UTC()
	questions := make([]domain.Question, 0, len(parsed.Questions))
	for _, item := range parsed.Questions {
		if strings.TrimSpace(item.Question) == "" {
			continue
		}
		questions = append(questions, domain.Question{
			QuestionText: strings.TrimSpace(item.Question),
			Course:       course,
			Topics:       strings.TrimSpace(item.Topic),
			Difficulty:   normalizeDifficulty(item.Difficulty),
			SourcePDF:    sourcePDF,
			Timestamp:    now,
		})
	}
	return questions, nil
}

// generateJSON runs one generation in JSON response mode and returns the
// concatenated text parts.
func (g *GeminiAnalyzer) generateJSON(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(geminiModel)
	model.SetTemperature(0.2)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	return stripCodeFences(sb.String()), nil
}

// stripCodeFences removes a markdown code fence the model sometimes wraps
// around JSON output despite the response MIME type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return "easy"
	case "medium":
		return "medium"
	case "hard":
		return "hard"
	default:
		return ""
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
