package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/domain"
)

// ImageExtractor collects accessibility metadata for the images on a page.
type ImageExtractor struct {
	fetcher  *Fetcher
	recorder FailureRecorder
	logger   *zap.Logger
}

func NewImageExtractor(fetcher *Fetcher, logger *zap.Logger) *ImageExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageExtractor{
		fetcher: fetcher,
		logger:  logger,
	}
}

// WithRecorder reports every fallback to r.
func (e *ImageExtractor) WithRecorder(r FailureRecorder) *ImageExtractor {
	e.recorder = r
	return e
}

func (e *ImageExtractor) Extract(ctx context.Context, pageURL string) Result[[]domain.ImageRecord] {
	doc, err := e.fetcher.Document(ctx, pageURL, "images")
	if err != nil {
		return Failure[[]domain.ImageRecord](err)
	}
	return Success(ExtractImages(doc))
}

// Images is Extract collapsed to an empty slice on failure.
func (e *ImageExtractor) Images(ctx context.Context, pageURL string) []domain.ImageRecord {
	result := e.Extract(ctx, pageURL)
	if !result.Ok() {
		e.logger.Warn("Site images unavailable, continuing without them",
			zap.String("url", pageURL),
			zap.Error(result.Err()),
		)
		if e.recorder != nil {
			e.recorder.ScrapeFailed("images")
		}
	}
	return result.OrElse([]domain.ImageRecord{})
}

// ExtractImages returns figure images first, then bare <img> tags whose src
// was not already collected, each group in document order.
func ExtractImages(doc *goquery.Document) []domain.ImageRecord {
	images := make([]domain.ImageRecord, 0)

	doc.Find("figure").Each(func(_ int, figure *goquery.Selection) {
		img := figure.Find("img").First()
		if img.Length() == 0 {
			return
		}

		src := attrValue(img, "src")
		if domain.HasSource(images, src) {
			return
		}

		var caption *string
		if figcaption := figure.Find("figcaption").First(); figcaption.Length() > 0 {
			text := strings.Join(strings.Fields(figcaption.Text()), " ")
			caption = &text
		}

		images = append(images, domain.ImageRecord{
			Src:     src,
			Alt:     attrValue(img, "alt"),
			Title:   attrValue(img, "title"),
			Caption: caption,
		})
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := attrValue(img, "src")
		if domain.HasSource(images, src) {
			return
		}

		images = append(images, domain.ImageRecord{
			Src:   src,
			Alt:   attrValue(img, "alt"),
			Title: attrValue(img, "title"),
		})
	})

	return images
}

func attrValue(sel *goquery.Selection, name string) *string {
	if value, ok := sel.Attr(name); ok {
		return &value
	}
	return nil
}
