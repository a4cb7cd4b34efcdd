package prompt

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/domain"
	"github.com/jovemprogramador/chatbot-go/internal/util"
)

func TestFormatImageLine(t *testing.T) {
	tests := []struct {
		name string
		img  domain.ImageRecord
		want string
	}{
		{
			name: "all fields",
			img: domain.ImageRecord{
				Src:     util.Ptr("hero.png"),
				Alt:     util.Ptr("Alunos em aula"),
				Title:   util.Ptr("Turma 2024"),
				Caption: util.Ptr("Formatura"),
			},
			want: "- Imagem: Alunos em aula. Título: Turma 2024. Legenda: Formatura.",
		},
		{
			name: "missing fields",
			img:  domain.ImageRecord{Src: util.Ptr("logo.png")},
			want: "- Imagem: Sem descrição disponível. Título: sem título. Legenda: sem legenda.",
		},
		{
			name: "blank alt",
			img:  domain.ImageRecord{Alt: util.Ptr(""), Title: util.Ptr("Logo")},
			want: "- Imagem: Sem descrição disponível. Título: Logo. Legenda: sem legenda.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatImageLine(tt.img); got != tt.want {
				t.Fatalf("FormatImageLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSiteAnswerEmbedsEverything(t *testing.T) {
	builder := NewPromptBuilder("https://www.jovemprogramador.com.br", zap.NewNop())
	images := []domain.ImageRecord{
		{Src: util.Ptr("a.png"), Alt: util.Ptr("Sala de aula"), Caption: util.Ptr("Aula prática")},
		{Src: util.Ptr("b.png")},
	}

	got := builder.BuildSiteAnswer("Conteúdo {{não é template}}\nlinha 2", images, "Como funciona o curso?")

	mustContain := []string{
		"Você é um assistente especializado no site Jovem Programador (https://www.jovemprogramador.com.br).",
		"Responda APENAS com base nas informações desse site.",
		"Caso a pergunta não esteja relacionada, informe que só pode responder sobre o site Jovem Programador.",
		"Conteúdo do site:\nConteúdo {{não é template}}\nlinha 2\n",
		"- Imagem: Sala de aula. Título: sem título. Legenda: Aula prática.\n- Imagem: Sem descrição disponível. Título: sem título. Legenda: sem legenda.\n",
		"Pergunta do usuário:\nComo funciona o curso?",
	}
	for _, want := range mustContain {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildSiteAnswerMatchesFallback(t *testing.T) {
	builder := NewPromptBuilder("https://example.com", zap.NewNop())

	for _, images := range [][]domain.ImageRecord{nil, {{Alt: util.Ptr("x")}}} {
		data := SiteAnswerData{
			SiteName:   "Jovem Programador",
			SiteURL:    "https://example.com",
			Content:    "texto",
			ImageLines: FormatImageLines(images),
			Question:   "pergunta sobre o site",
		}

		rendered := builder.BuildSiteAnswer(data.Content, images, data.Question)
		if fallback := FallbackSiteAnswer(data); rendered != fallback {
			t.Fatalf("template and fallback diverge:\n%q\n%q", rendered, fallback)
		}
	}
}

func TestBuildSiteAnswerIsDeterministic(t *testing.T) {
	builder := NewPromptBuilder("", nil)

	first := builder.BuildSiteAnswer("a", nil, "q")
	second := builder.BuildSiteAnswer("a", nil, "q")
	if first != second {
		t.Fatalf("expected identical prompts")
	}
	if !strings.Contains(first, "https://www.jovemprogramador.com.br") {
		t.Fatalf("expected default site URL in prompt")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	builder := NewPromptBuilder("", zap.NewNop())
	if _, err := builder.Render("missing.tmpl", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
