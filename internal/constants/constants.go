package constants

import "time"

var Site = struct {
	Name       string
	DefaultURL string
}{
	Name:       "Jovem Programador",
	DefaultURL: "https://www.jovemprogramador.com.br",
}

var ScraperConfig = struct {
	Timeout   time.Duration
	UserAgent string
}{
	Timeout:   10 * time.Second,
	UserAgent: "Mozilla/5.0 (compatible; JovemProgramadorBot/1.0)",
}

var AnswerLimits = struct {
	MinAnswerLength int
	LogPreviewRunes int
}{
	MinAnswerLength: 20, // respostas mais curtas viram a mensagem de informação insuficiente
	LogPreviewRunes: 120,
}

var ModelDefaults = struct {
	Provider    string
	GeminiModel string
	OpenAIModel string
}{
	Provider:    "gemini",
	GeminiModel: "gemini-2.0-flash",
	OpenAIModel: "gpt-4o-mini",
}

var ServerConfig = struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}{
	Port:            5000,
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    2 * time.Minute, // cobre scraping + geração
	IdleTimeout:     120 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxBodyBytes:    1 << 20,
}

// Fixed user-facing messages.
var Messages = struct {
	InvalidQuestion  string
	OffTopic         string
	SiteUnavailable  string
	InsufficientInfo string
	ModelErrorPrefix string
}{
	InvalidQuestion:  "Por favor, digite uma pergunta válida.",
	OffTopic:         "Posso responder apenas sobre o site Jovem Programador. Por favor, envie uma pergunta relacionada a ele.",
	SiteUnavailable:  "Erro ao acessar o site Jovem Programador.",
	InsufficientInfo: "Não encontrei informações suficientes no site Jovem Programador para responder a essa pergunta.",
	ModelErrorPrefix: "Ocorreu um erro ao gerar a resposta: ",
}
