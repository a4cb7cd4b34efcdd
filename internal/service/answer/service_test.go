package answer

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/internal/domain"
	"github.com/jovemprogramador/chatbot-go/internal/service/scraper"
	"github.com/jovemprogramador/chatbot-go/internal/util"
	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

const testSite = "https://site.test"

type fakeContent struct {
	text  string
	mu    sync.Mutex
	urls  []string
	hook  func()
	calls int
}

func (f *fakeContent) Text(_ context.Context, pageURL string) string {
	if f.hook != nil {
		f.hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.urls = append(f.urls, pageURL)
	return f.text
}

type fakeImages struct {
	images []domain.ImageRecord
	hook   func()
	calls  int
}

func (f *fakeImages) Images(_ context.Context, _ string) []domain.ImageRecord {
	if f.hook != nil {
		f.hook()
	}
	f.calls++
	return f.images
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type fakeRecorder struct {
	outcomes    []domain.Outcome
	modelErrors int
}

func (f *fakeRecorder) ObserveAnswer(outcome domain.Outcome, _ time.Duration) {
	f.outcomes = append(f.outcomes, outcome)
}

func (f *fakeRecorder) ModelFailed(string) {
	f.modelErrors++
}

type fixture struct {
	service   *Service
	content   *fakeContent
	images    *fakeImages
	generator *fakeGenerator
	recorder  *fakeRecorder
}

func newFixture(modelText string, modelErr error) *fixture {
	f := &fixture{
		content: &fakeContent{text: "O Jovem Programador oferece cursos gratuitos."},
		images: &fakeImages{images: []domain.ImageRecord{
			{Src: util.Ptr("turma.png"), Alt: util.Ptr("Turma reunida"), Caption: util.Ptr("Formatura")},
		}},
		generator: &fakeGenerator{text: modelText, err: modelErr},
		recorder:  &fakeRecorder{},
	}
	f.service = NewService(Dependencies{
		Content:   f.content,
		Images:    f.images,
		Generator: f.generator,
		SiteURL:   testSite,
		Recorder:  f.recorder,
		Logger:    zap.NewNop(),
	})
	return f
}

func (f *fixture) assertNoCollaboratorCalls(t *testing.T) {
	t.Helper()
	if f.content.calls != 0 || f.images.calls != 0 {
		t.Fatalf("expected no scraping, got content=%d images=%d", f.content.calls, f.images.calls)
	}
	if len(f.generator.prompts) != 0 {
		t.Fatalf("expected no model call, got %d", len(f.generator.prompts))
	}
}

func TestAnswerEmptyQuestion(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		f := newFixture("irrelevante", nil)

		got := f.service.Answer(context.Background(), raw)
		if got.Text != "Por favor, digite uma pergunta válida." {
			t.Fatalf("Answer(%q) = %q", raw, got.Text)
		}
		if got.Outcome != domain.OutcomeEmpty {
			t.Fatalf("expected empty outcome, got %s", got.Outcome)
		}
		f.assertNoCollaboratorCalls(t)
	}
}

func TestAnswerGreeting(t *testing.T) {
	f := newFixture("irrelevante", nil)

	got := f.service.Answer(context.Background(), "Oi, bom dia!")
	if got.Text != "Olá! Como posso ajudar você hoje?" {
		t.Fatalf("unexpected greeting %q", got.Text)
	}
	if got.Outcome != domain.OutcomeGreeting {
		t.Fatalf("expected greeting outcome, got %s", got.Outcome)
	}
	f.assertNoCollaboratorCalls(t)
}

func TestAnswerFarewell(t *testing.T) {
	f := newFixture("irrelevante", nil)

	got := f.service.Answer(context.Background(), "Valeu pela ajuda")
	if got.Text != "Valeu! Conte comigo sempre!" || got.Outcome != domain.OutcomeFarewell {
		t.Fatalf("unexpected farewell %+v", got)
	}
	f.assertNoCollaboratorCalls(t)
}

func TestAnswerOffTopic(t *testing.T) {
	f := newFixture("irrelevante", nil)

	got := f.service.Answer(context.Background(), "Qual é a capital da França?")
	if got.Text != "Posso responder apenas sobre o site Jovem Programador. Por favor, envie uma pergunta relacionada a ele." {
		t.Fatalf("unexpected refusal %q", got.Text)
	}
	if got.Outcome != domain.OutcomeOffTopic {
		t.Fatalf("expected off_topic, got %s", got.Outcome)
	}
	f.assertNoCollaboratorCalls(t)
}

func TestAnswerOffTopicIsIdempotent(t *testing.T) {
	f := newFixture("irrelevante", nil)

	first := f.service.Answer(context.Background(), "Qual é a capital da França?")
	second := f.service.Answer(context.Background(), "Qual é a capital da França?")
	if first != second {
		t.Fatalf("expected identical answers, got %+v and %+v", first, second)
	}
}

func TestAnswerInScope(t *testing.T) {
	f := newFixture("  O curso é gratuito e dura um ano.  \n", nil)

	got := f.service.Answer(context.Background(), "  Como funciona o curso?  ")
	if got.Text != "O curso é gratuito e dura um ano." {
		t.Fatalf("expected trimmed model text, got %q", got.Text)
	}
	if got.Outcome != domain.OutcomeAnswered {
		t.Fatalf("expected answered, got %s", got.Outcome)
	}

	if len(f.generator.prompts) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(f.generator.prompts))
	}
	prompt := f.generator.prompts[0]
	for _, want := range []string{
		"O Jovem Programador oferece cursos gratuitos.",
		"- Imagem: Turma reunida. Título: sem título. Legenda: Formatura.",
		"Como funciona o curso?",
		testSite,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}

	if f.content.calls != 1 || f.images.calls != 1 {
		t.Fatalf("expected each extractor once, got content=%d images=%d", f.content.calls, f.images.calls)
	}
	if f.content.urls[0] != testSite {
		t.Fatalf("expected scrape of %s, got %s", testSite, f.content.urls[0])
	}
	if len(f.recorder.outcomes) != 1 || f.recorder.outcomes[0] != domain.OutcomeAnswered {
		t.Fatalf("expected answered to be recorded, got %v", f.recorder.outcomes)
	}
}

func TestAnswerScrapeFailureStillCallsModel(t *testing.T) {
	f := newFixture("O curso é voltado para jovens de 16 a 24 anos.", nil)
	f.content.text = constants.Messages.SiteUnavailable
	f.images.images = []domain.ImageRecord{}

	got := f.service.Answer(context.Background(), "Quem pode fazer o curso?")
	if got.Outcome != domain.OutcomeAnswered {
		t.Fatalf("expected answered, got %s (%q)", got.Outcome, got.Text)
	}

	if len(f.generator.prompts) != 1 {
		t.Fatalf("expected model to be called once, got %d", len(f.generator.prompts))
	}
	prompt := f.generator.prompts[0]
	if !strings.Contains(prompt, "Erro ao acessar o site Jovem Programador.") {
		t.Fatalf("expected degraded content in prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, "- Imagem:") {
		t.Fatalf("expected zero image lines:\n%s", prompt)
	}
}

func TestAnswerNilImagesFromSource(t *testing.T) {
	f := newFixture("As inscrições ficam abertas no site oficial.", nil)
	f.images.images = nil

	got := f.service.Answer(context.Background(), "Quando abre a inscrição?")
	if got.Outcome != domain.OutcomeAnswered {
		t.Fatalf("expected answered, got %s", got.Outcome)
	}
}

func TestAnswerModelError(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	f := newFixture("", errors.NewModelError("Gemini", "gemini-2.0-flash", cause))

	got := f.service.Answer(context.Background(), "Como funciona o curso?")
	if got.Text != "Ocorreu um erro ao gerar a resposta: quota exceeded" {
		t.Fatalf("unexpected error text %q", got.Text)
	}
	if got.Outcome != domain.OutcomeModelError {
		t.Fatalf("expected model_error, got %s", got.Outcome)
	}
	if f.recorder.modelErrors != 1 {
		t.Fatalf("expected model failure to be recorded once, got %d", f.recorder.modelErrors)
	}
	if len(f.generator.prompts) != 1 {
		t.Fatalf("expected no retries, got %d calls", len(f.generator.prompts))
	}
}

func TestAnswerPlainModelError(t *testing.T) {
	f := newFixture("", stderrors.New("connection reset"))

	got := f.service.Answer(context.Background(), "Como funciona o curso?")
	if got.Text != "Ocorreu um erro ao gerar a resposta: connection reset" {
		t.Fatalf("unexpected error text %q", got.Text)
	}
}

func TestAnswerInsufficient(t *testing.T) {
	tests := []struct {
		name      string
		modelText string
		want      domain.Outcome
	}{
		{name: "empty", modelText: "", want: domain.OutcomeInsufficient},
		{name: "whitespace", modelText: "   \n ", want: domain.OutcomeInsufficient},
		{name: "short", modelText: "Não sei.", want: domain.OutcomeInsufficient},
		{name: "nineteen runes", modelText: strings.Repeat("ç", 19), want: domain.OutcomeInsufficient},
		{name: "twenty runes", modelText: strings.Repeat("ç", 20), want: domain.OutcomeAnswered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.modelText, nil)

			got := f.service.Answer(context.Background(), "Como funciona o curso?")
			if got.Outcome != tt.want {
				t.Fatalf("expected %s, got %s (%q)", tt.want, got.Outcome, got.Text)
			}
			if tt.want == domain.OutcomeInsufficient && got.Text != "Não encontrei informações suficientes no site Jovem Programador para responder a essa pergunta." {
				t.Fatalf("unexpected fallback %q", got.Text)
			}
		})
	}
}

func TestAnswerExtractorsRunConcurrently(t *testing.T) {
	f := newFixture("O curso é gratuito e presencial.", nil)

	contentStarted := make(chan struct{})
	imagesStarted := make(chan struct{})
	var overlapped sync.WaitGroup
	overlapped.Add(2)
	var missed int
	var mu sync.Mutex

	waitFor := func(ch <-chan struct{}) {
		defer overlapped.Done()
		select {
		case <-ch:
		case <-time.After(time.Second):
			mu.Lock()
			missed++
			mu.Unlock()
		}
	}

	f.content.hook = func() {
		close(contentStarted)
		waitFor(imagesStarted)
	}
	f.images.hook = func() {
		close(imagesStarted)
		waitFor(contentStarted)
	}

	f.service.Answer(context.Background(), "Como funciona o curso?")
	overlapped.Wait()

	if missed != 0 {
		t.Fatalf("expected extractors to overlap")
	}
}

func TestAnswerWithoutGenerator(t *testing.T) {
	service := NewService(Dependencies{
		Content: &fakeContent{text: "conteúdo"},
		Images:  &fakeImages{},
	})

	got := service.Answer(context.Background(), "Como funciona o curso?")
	if got.Outcome != domain.OutcomeModelError {
		t.Fatalf("expected model_error, got %s", got.Outcome)
	}
	if !strings.HasPrefix(got.Text, constants.Messages.ModelErrorPrefix) {
		t.Fatalf("unexpected text %q", got.Text)
	}
}

func TestAnswerUnreachableSiteWithRealExtractors(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	siteURL := down.URL
	down.Close()

	fetcher := scraper.NewFetcher(scraper.FetcherConfig{Timeout: time.Second}, zap.NewNop())
	generator := &fakeGenerator{text: "O curso ensina programação para jovens."}
	service := NewService(Dependencies{
		Content:   scraper.NewContentExtractor(fetcher, zap.NewNop()),
		Images:    scraper.NewImageExtractor(fetcher, zap.NewNop()),
		Generator: generator,
		SiteURL:   siteURL,
		Logger:    zap.NewNop(),
	})

	got := service.Answer(context.Background(), "Como funciona o curso do Jovem Programador?")
	if got.Outcome != domain.OutcomeAnswered {
		t.Fatalf("expected answered, got %s (%q)", got.Outcome, got.Text)
	}
	if len(generator.prompts) != 1 {
		t.Fatalf("expected the model to be invoked once, got %d", len(generator.prompts))
	}

	prompt := generator.prompts[0]
	if !strings.Contains(prompt, "Conteúdo do site:\nErro ao acessar o site Jovem Programador.\n") {
		t.Fatalf("expected degraded content in prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, "- Imagem:") {
		t.Fatalf("expected no image lines:\n%s", prompt)
	}
}
