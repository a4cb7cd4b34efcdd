package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sync"
	"text/template"

	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateName string

const (
	TemplateSiteAnswer TemplateName = "site_answer.tmpl"
)

type PromptBuilder struct {
	mu        sync.RWMutex
	templates map[TemplateName]*template.Template
	siteName  string
	siteURL   string
	logger    *zap.Logger
}

func NewPromptBuilder(siteURL string, logger *zap.Logger) *PromptBuilder {
	if siteURL == "" {
		siteURL = constants.Site.DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromptBuilder{
		templates: make(map[TemplateName]*template.Template),
		siteName:  constants.Site.Name,
		siteURL:   siteURL,
		logger:    logger,
	}
}

// BuildSiteAnswer assembles the generation prompt for one in-scope question.
// Template failures fall back to the fmt renderer, so it always returns text.
func (pb *PromptBuilder) BuildSiteAnswer(content string, images []domain.ImageRecord, question string) string {
	data := SiteAnswerData{
		SiteName:   pb.siteName,
		SiteURL:    pb.siteURL,
		Content:    content,
		ImageLines: FormatImageLines(images),
		Question:   question,
	}

	rendered, err := pb.Render(TemplateSiteAnswer, data)
	if err != nil {
		pb.logger.Warn("Prompt template failed, using fallback renderer", zap.Error(err))
		return FallbackSiteAnswer(data)
	}
	return rendered
}

func (pb *PromptBuilder) Render(name TemplateName, data any) (string, error) {
	tmpl, err := pb.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

func (pb *PromptBuilder) getTemplate(name TemplateName) (*template.Template, error) {
	pb.mu.RLock()
	if tmpl, ok := pb.templates[name]; ok {
		pb.mu.RUnlock()
		return tmpl, nil
	}
	pb.mu.RUnlock()

	filename := filepath.ToSlash(filepath.Join("templates", string(name)))
	content, err := templateFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load prompt template %s: %w", name, err)
	}

	tmpl, err := template.New(string(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.templates[name] = tmpl

	return tmpl, nil
}
