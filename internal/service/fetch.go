package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"study-toolkit/internal/domain"
	apperrors "study-toolkit/pkg/errors"
)

const (
	downloadTimeout   = 30 * time.Second
	downloadUserAgent = "study-toolkit/1.0"
)

// HTTPFetcher implements domain.Fetcher: it retrieves a URL and writes the
// body to a local file. Non-2xx responses are a distinguishable download
// error; transport errors and 5xx get one retry with backoff.
type HTTPFetcher struct {
	client *http.Client
	logger domain.Logger
}

// NewHTTPFetcher creates a fetcher with the fixed per-download timeout.
func NewHTTPFetcher(logger domain.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: downloadTimeout},
		logger: logger,
	}
}

// Fetch downloads url into destPath and returns the byte count written.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, destPath string) (int64, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return 0, apperrors.NewDownloadError("download cancelled", ctx.Err())
			}
			f.logger.Warn("Download failed, retrying", "url", url, "error", lastErr)
		}

		size, retryable, err := f.doFetch(ctx, url, destPath)
		if err == nil {
			return size, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return 0, apperrors.NewDownloadError(fmt.Sprintf("failed to download %s", url), lastErr)
}

func (f *HTTPFetcher) doFetch(ctx context.Context, url, destPath string) (int64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, resp.StatusCode >= 500, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	size, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Half-written files must not survive a failed download.
		_ = os.Remove(destPath)
		return 0, true, fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	return size, false, nil
}

// PDFDownloadService implements domain.DownloadService. Files land under a
// single download directory; callers are responsible for picking collision-free
// filenames (the pipeline embeds a per-run token).
type PDFDownloadService struct {
	fetcher      domain.Fetcher
	downloadPath string
	logger       domain.Logger
}

// NewPDFDownloadService creates a new download service rooted at downloadPath.
func NewPDFDownloadService(fetcher domain.Fetcher, downloadPath string, logger domain.Logger) *PDFDownloadService {
	return &PDFDownloadService{
		fetcher:      fetcher,
		downloadPath: downloadPath,
		logger:       logger,
	}
}

// Download fetches url into the download directory under fileName and returns
// size/identity metadata.
func (s *PDFDownloadService) Download(ctx context.Context, url, fileName string) (*domain.DownloadedPDF, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.ErrDownloadURLEmpty
	}

	fileName = SanitizeFilename(fileName)
	if fileName == "" {
		fileName = "download.pdf"
	}

	if err := os.MkdirAll(s.downloadPath, 0o755); err != nil {
		return nil, apperrors.NewDownloadError("failed to create download directory", err)
	}

	destPath := filepath.Join(s.downloadPath, fileName)
	size, err := s.fetcher.Fetch(ctx, url, destPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Downloaded PDF", "url", url, "path", destPath, "size_bytes", size)

	return &domain.DownloadedPDF{
		Filename:  fileName,
		Path:      destPath,
		SourceURL: url,
		SizeBytes: size,
	}, nil
}

// SanitizeFilename strips path separators and whitespace so a caller-supplied
// name cannot escape the download directory.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
