package scraper

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
)

// Elements whose text never renders on the page.
var hiddenTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

// ContentExtractor returns the visible text of a page, one text node per line.
type ContentExtractor struct {
	fetcher  *Fetcher
	fallback string
	recorder FailureRecorder
	logger   *zap.Logger
}

func NewContentExtractor(fetcher *Fetcher, logger *zap.Logger) *ContentExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentExtractor{
		fetcher:  fetcher,
		fallback: constants.Messages.SiteUnavailable,
		logger:   logger,
	}
}

// WithRecorder reports every fallback to r.
func (e *ContentExtractor) WithRecorder(r FailureRecorder) *ContentExtractor {
	e.recorder = r
	return e
}

func (e *ContentExtractor) Extract(ctx context.Context, pageURL string) Result[string] {
	doc, err := e.fetcher.Document(ctx, pageURL, "content")
	if err != nil {
		return Failure[string](err)
	}

	var parts []string
	for _, root := range doc.Nodes {
		parts = collectText(root, parts)
	}

	return Success(strings.Join(parts, "\n"))
}

// Text is Extract collapsed to the degraded message on failure.
func (e *ContentExtractor) Text(ctx context.Context, pageURL string) string {
	result := e.Extract(ctx, pageURL)
	if !result.Ok() {
		e.logger.Warn("Site content unavailable, using fallback text",
			zap.String("url", pageURL),
			zap.Error(result.Err()),
		)
		if e.recorder != nil {
			e.recorder.ScrapeFailed("content")
		}
	}
	return result.OrElse(e.fallback)
}

func collectText(n *html.Node, parts []string) []string {
	switch n.Type {
	case html.TextNode:
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			parts = append(parts, trimmed)
		}
		return parts
	case html.ElementNode:
		if hiddenTextElements[n.Data] {
			return parts
		}
	case html.CommentNode, html.DoctypeNode:
		return parts
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}
