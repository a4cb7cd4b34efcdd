package domain

import (
	"strings"

	"github.com/jovemprogramador/chatbot-go/internal/util"
)

// AskRequest is the body of POST /perguntar. A missing field decodes as "".
type AskRequest struct {
	Pergunta string `json:"pergunta"`
}

// AskResponse is returned for every documented outcome with status 200.
type AskResponse struct {
	Resposta string `json:"resposta"`
}

// NormalizeQuestion trims surrounding whitespace from a raw question.
func NormalizeQuestion(raw string) string {
	return strings.TrimSpace(raw)
}

// ForMatching lower-cases a question for term matching.
func ForMatching(question string) string {
	return util.Normalize(question)
}
