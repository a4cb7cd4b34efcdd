package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/config"
	"github.com/jovemprogramador/chatbot-go/internal/metrics"
	"github.com/jovemprogramador/chatbot-go/internal/prompt"
	"github.com/jovemprogramador/chatbot-go/internal/server"
	"github.com/jovemprogramador/chatbot-go/internal/service/ai"
	"github.com/jovemprogramador/chatbot-go/internal/service/answer"
	"github.com/jovemprogramador/chatbot-go/internal/service/scraper"
	"github.com/jovemprogramador/chatbot-go/internal/service/topic"
)

// Container bundles assembled services for constructing runtime components like Server.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Answers *answer.Service
}

// NewServer instantiates the HTTP server using the pre-built dependency graph.
func (c *Container) NewServer() (*server.Server, error) {
	if c == nil || c.Answers == nil {
		return nil, fmt.Errorf("answer service not initialized")
	}
	return server.New(server.Config{
		Addr:        c.Config.Addr(),
		CORSEnabled: c.Config.Server.CORSEnabled,
	}, c.Answers, c.Metrics, c.Logger), nil
}

// Build assembles the answer pipeline. Only the model client is created here;
// every request builds its own scrape results and prompt.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	m := metrics.New()

	// Site scraping
	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		Timeout:   cfg.Site.Timeout,
		UserAgent: cfg.Site.UserAgent,
	}, logger)
	content := scraper.NewContentExtractor(fetcher, logger).WithRecorder(m)
	images := scraper.NewImageExtractor(fetcher, logger).WithRecorder(m)

	// AI stack
	generator, err := ai.NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model provider: %w", err)
	}

	answers := answer.NewService(answer.Dependencies{
		Gate:      topic.DefaultGate(),
		Content:   content,
		Images:    images,
		Prompts:   prompt.NewPromptBuilder(cfg.Site.URL, logger),
		Generator: generator,
		SiteURL:   cfg.Site.URL,
		Recorder:  m,
		Logger:    logger,
	})

	logger.Info("Answer pipeline assembled",
		zap.String("site", cfg.Site.URL),
		zap.String("provider", generator.Name()),
		zap.Duration("scrape_timeout", cfg.Site.Timeout),
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Answers: answers,
	}, nil
}
