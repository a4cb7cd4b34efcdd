package answer

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/internal/domain"
	"github.com/jovemprogramador/chatbot-go/internal/prompt"
	"github.com/jovemprogramador/chatbot-go/internal/service/ai"
	"github.com/jovemprogramador/chatbot-go/internal/service/topic"
	"github.com/jovemprogramador/chatbot-go/internal/util"
	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

const tracerName = "github.com/jovemprogramador/chatbot-go/internal/service/answer"

// ContentSource returns the visible site text, or a degraded message when the
// site cannot be read. It never fails.
type ContentSource interface {
	Text(ctx context.Context, pageURL string) string
}

// ImageSource returns the site's image records, or an empty slice when the
// site cannot be read. It never fails.
type ImageSource interface {
	Images(ctx context.Context, pageURL string) []domain.ImageRecord
}

// Recorder receives per-answer measurements. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveAnswer(outcome domain.Outcome, elapsed time.Duration)
	ModelFailed(provider string)
}

type Dependencies struct {
	Gate      *topic.Gate
	Content   ContentSource
	Images    ImageSource
	Prompts   *prompt.PromptBuilder
	Generator ai.Generator
	SiteURL   string
	Recorder  Recorder
	Logger    *zap.Logger
}

// Service turns a raw question into the final answer text.
type Service struct {
	gate      *topic.Gate
	content   ContentSource
	images    ImageSource
	prompts   *prompt.PromptBuilder
	generator ai.Generator
	siteURL   string
	recorder  Recorder
	tracer    trace.Tracer
	logger    *zap.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gate := deps.Gate
	if gate == nil {
		gate = topic.DefaultGate()
	}

	siteURL := deps.SiteURL
	if siteURL == "" {
		siteURL = constants.Site.DefaultURL
	}

	prompts := deps.Prompts
	if prompts == nil {
		prompts = prompt.NewPromptBuilder(siteURL, logger)
	}

	return &Service{
		gate:      gate,
		content:   deps.Content,
		images:    deps.Images,
		prompts:   prompts,
		generator: deps.Generator,
		siteURL:   siteURL,
		recorder:  deps.Recorder,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Answer always produces a non-empty text. Collaborator failures degrade into
// fixed messages instead of surfacing as errors.
func (s *Service) Answer(ctx context.Context, raw string) domain.Answer {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "answer.Answer")
	defer span.End()

	result := s.answer(ctx, raw)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.String("answer.outcome", result.Outcome.String()))
	if s.recorder != nil {
		s.recorder.ObserveAnswer(result.Outcome, elapsed)
	}

	s.logger.Info("Question answered",
		zap.String("question", util.TruncateString(domain.NormalizeQuestion(raw), constants.AnswerLimits.LogPreviewRunes)),
		zap.String("outcome", result.Outcome.String()),
		zap.Duration("elapsed", elapsed),
	)

	return result
}

func (s *Service) answer(ctx context.Context, raw string) domain.Answer {
	question := domain.NormalizeQuestion(raw)
	if question == "" {
		s.logger.Debug("Rejected question", zap.Error(errors.NewValidationError("question is empty", "pergunta", raw)))
		return domain.Answer{Text: constants.Messages.InvalidQuestion, Outcome: domain.OutcomeEmpty}
	}

	verdict := s.gate.Classify(domain.ForMatching(question))
	if verdict.IsTerminal() {
		s.logger.Debug("Topic gate short-circuit",
			zap.String("kind", verdict.Kind.String()),
			zap.String("term", verdict.Term),
		)
		return domain.Answer{Text: verdict.Reply, Outcome: domain.OutcomeForTopic(verdict.Kind)}
	}

	content, images := s.gatherSite(ctx)
	sitePrompt := s.prompts.BuildSiteAnswer(content, images, question)

	text, err := s.generate(ctx, sitePrompt)
	if err != nil {
		return domain.Answer{
			Text:    constants.Messages.ModelErrorPrefix + describeModelError(err),
			Outcome: domain.OutcomeModelError,
		}
	}

	text = strings.TrimSpace(text)
	if util.RuneLen(text) < constants.AnswerLimits.MinAnswerLength {
		s.logger.Debug("Model answer too short, using fallback", zap.Int("runes", util.RuneLen(text)))
		return domain.Answer{Text: constants.Messages.InsufficientInfo, Outcome: domain.OutcomeInsufficient}
	}

	return domain.Answer{Text: text, Outcome: domain.OutcomeAnswered}
}

// gatherSite reads the page text and the image records concurrently. Both
// sources degrade on their own, so this always returns usable values.
func (s *Service) gatherSite(ctx context.Context) (string, []domain.ImageRecord) {
	ctx, span := s.tracer.Start(ctx, "answer.scrape",
		trace.WithAttributes(attribute.String("site.url", s.siteURL)),
	)
	defer span.End()

	content := constants.Messages.SiteUnavailable
	images := []domain.ImageRecord{}

	var wg conc.WaitGroup
	if s.content != nil {
		wg.Go(func() {
			content = s.content.Text(ctx, s.siteURL)
		})
	}
	if s.images != nil {
		wg.Go(func() {
			images = s.images.Images(ctx, s.siteURL)
		})
	}
	wg.Wait()

	if images == nil {
		images = []domain.ImageRecord{}
	}

	span.SetAttributes(
		attribute.Int("site.content_runes", util.RuneLen(content)),
		attribute.Int("site.images", len(images)),
	)
	return content, images
}

func (s *Service) generate(ctx context.Context, sitePrompt string) (string, error) {
	if s.generator == nil {
		return "", errors.NewModelError("none", "", stderrors.New("no model provider configured"))
	}

	ctx, span := s.tracer.Start(ctx, "answer.generate",
		trace.WithAttributes(attribute.String("model.provider", s.generator.Name())),
	)
	defer span.End()

	text, err := s.generator.Generate(ctx, sitePrompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		if s.recorder != nil {
			s.recorder.ModelFailed(s.generator.Name())
		}
		s.logger.Error("Model generation failed",
			zap.String("provider", s.generator.Name()),
			zap.Error(err),
		)
		return "", err
	}

	return text, nil
}

// describeModelError reports the provider's own message when the error is a
// wrapped ModelError.
func describeModelError(err error) string {
	var modelErr *errors.ModelError
	if stderrors.As(err, &modelErr) && modelErr.Cause != nil {
		return modelErr.Cause.Error()
	}
	return err.Error()
}
