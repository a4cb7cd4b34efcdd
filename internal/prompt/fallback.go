package prompt

import (
	"fmt"
	"strings"

	"github.com/jovemprogramador/chatbot-go/internal/domain"
	"github.com/jovemprogramador/chatbot-go/internal/util"
)

const (
	missingAlt     = "Sem descrição disponível"
	missingTitle   = "sem título"
	missingCaption = "sem legenda"
)

// FormatImageLine renders one image as a prompt line. Blank attributes count
// as missing.
func FormatImageLine(img domain.ImageRecord) string {
	return fmt.Sprintf("- Imagem: %s. Título: %s. Legenda: %s.",
		util.ValueOr(img.Alt, missingAlt),
		util.ValueOr(img.Title, missingTitle),
		util.ValueOr(img.Caption, missingCaption),
	)
}

func FormatImageLines(images []domain.ImageRecord) []string {
	lines := make([]string, 0, len(images))
	for _, img := range images {
		lines = append(lines, FormatImageLine(img))
	}
	return lines
}

func FallbackSiteAnswer(data SiteAnswerData) string {
	imageBlock := ""
	if len(data.ImageLines) > 0 {
		imageBlock = strings.Join(data.ImageLines, "\n") + "\n"
	}

	return fmt.Sprintf(`Você é um assistente especializado no site %s (%s).
Responda APENAS com base nas informações desse site.
Caso a pergunta não esteja relacionada, informe que só pode responder sobre o site %s.

Conteúdo do site:
%s

Informações sobre imagens:
%s
Pergunta do usuário:
%s
`, data.SiteName, data.SiteURL, data.SiteName, data.Content, imageBlock, data.Question)
}
