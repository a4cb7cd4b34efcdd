package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

const maxPageBytes = 5 << 20

type FetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher issues one GET per call and parses the body. It keeps no state
// between calls beyond the shared *http.Client, so it is safe to reuse.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.ScraperConfig.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.ScraperConfig.UserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Document fetches pageURL and parses it as HTML. Every failure is returned
// as a *errors.ScrapeError tagged with operation.
func (f *Fetcher) Document(ctx context.Context, pageURL, operation string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.NewScrapeError("invalid request", pageURL, operation, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewScrapeError("HTTP request failed", pageURL, operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewScrapeError("unexpected status code", pageURL, operation,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.NewScrapeError("unsupported charset", pageURL, operation, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewScrapeError("HTML parse failed", pageURL, operation, err)
	}

	f.logger.Debug("Fetched page",
		zap.String("url", pageURL),
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return doc, nil
}
