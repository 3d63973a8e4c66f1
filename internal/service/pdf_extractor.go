package service

import (
	"fmt"
	"strings"

	"study-toolkit/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// PDFExtractor extracts plain text from PDF documents using go-fitz.
// Page-level failures are logged and contribute an empty page; only a
// document that cannot be opened at all is an error.
type PDFExtractor struct {
	logger domain.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ExtractFromBytes extracts the concatenated page text from in-memory PDF content.
func (p *PDFExtractor) ExtractFromBytes(pdf []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return p.extractText(doc), nil
}

// ExtractFromFile extracts the concatenated page text from a PDF on disk.
func (p *PDFExtractor) ExtractFromFile(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer doc.Close()

	return p.extractText(doc), nil
}

func (p *PDFExtractor) extractText(doc *fitz.Document) string {
	var sb strings.Builder
	numPages := doc.NumPage()

	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			p.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
