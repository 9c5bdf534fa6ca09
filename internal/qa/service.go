// Package qa answers questions about uploaded documents and web pages by
// extracting their text and asking the completion API.
package qa

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/hyperjump/askdoc/internal/apperr"
	"github.com/hyperjump/askdoc/internal/metrics"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/storage"
	"github.com/hyperjump/askdoc/pkg/utils"
	"go.uber.org/zap"
)

// Stage labels reported to metrics.
const (
	StageSave       = "save"
	StageExtraction = "extraction"
	StageScrape     = "scrape"
	StageCompletion = "completion"
)

// FileExtractor turns a stored file into text.
type FileExtractor interface {
	ExtractFile(path, name string) (string, error)
}

// PageScraper fetches a web page and returns its text.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Completer answers a question given document content.
type Completer interface {
	Complete(ctx context.Context, question, content string) (string, error)
}

// UploadStore holds uploaded payloads until release is called.
type UploadStore interface {
	Save(r io.Reader) (path string, release func(), err error)
}

// Service runs the extract-then-complete pipeline. It holds no mutable state and
// is safe for concurrent use.
type Service struct {
	extractor FileExtractor
	scraper   PageScraper
	completer Completer
	uploads   UploadStore
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a Service. m may be nil.
func NewService(
	extractor FileExtractor,
	scraper PageScraper,
	completer Completer,
	uploads UploadStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor: extractor,
		scraper:   scraper,
		completer: completer,
		uploads:   uploads,
		metrics:   m,
		logger:    logger,
	}
}

// AnswerUpload stores body under a random name, extracts its text, asks question
// and removes the stored file before returning.
func (s *Service) AnswerUpload(ctx context.Context, doc models.UploadedDocument, body io.Reader, question string) (*models.UploadAnswer, error) {
	start := time.Now()
	path, release, err := s.uploads.Save(body)
	s.metrics.ObserveStage(StageSave, err, time.Since(start))
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, apperr.Wrap(apperr.KindInvalidInput, err, "uploaded file is too large")
		}
		return nil, apperr.Wrap(apperr.KindInternal, err, "error saving uploaded file")
	}
	defer release()

	s.logger.Debug("upload stored", zap.String("file_name", doc.Name), zap.String("path", path))

	start = time.Now()
	text, err := s.extractor.ExtractFile(path, doc.Name)
	s.metrics.ObserveStage(StageExtraction, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	answer, err := s.complete(ctx, question, text)
	if err != nil {
		return nil, err
	}
	return &models.UploadAnswer{FileName: doc.Name, Answer: answer}, nil
}

// AnswerURL scrapes url and asks question about the page text.
func (s *Service) AnswerURL(ctx context.Context, url, question string) (*models.ScrapeAnswer, error) {
	start := time.Now()
	text, err := s.scraper.Scrape(ctx, url)
	s.metrics.ObserveStage(StageScrape, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("page scraped", zap.String("url", url), zap.Int("chars", len([]rune(text))))

	answer, err := s.complete(ctx, question, text)
	if err != nil {
		return nil, err
	}
	return &models.ScrapeAnswer{URL: url, Answer: answer}, nil
}

func (s *Service) complete(ctx context.Context, question, text string) (string, error) {
	start := time.Now()
	answer, err := s.completer.Complete(ctx, question, text)
	s.metrics.ObserveStage(StageCompletion, err, time.Since(start))
	if err != nil {
		return "", err
	}
	s.logger.Debug("answered",
		zap.String("question", utils.Truncate(question, 80)),
		zap.String("answer", utils.Truncate(answer, 120)),
	)
	return answer, nil
}
