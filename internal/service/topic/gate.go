package topic

import (
	"strings"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/internal/domain"
)

// Gate classifies a lower-cased question without touching the network.
// It is read-only after construction and safe for concurrent use.
type Gate struct {
	greetings []Term
	farewells []Term
	allowlist []string
	refusal   string
}

func NewGate(greetings, farewells []Term, allowlist []string) *Gate {
	return &Gate{
		greetings: append([]Term(nil), greetings...),
		farewells: append([]Term(nil), farewells...),
		allowlist: append([]string(nil), allowlist...),
		refusal:   constants.Messages.OffTopic,
	}
}

func DefaultGate() *Gate {
	return NewGate(defaultGreetings, defaultFarewells, defaultAllowlist)
}

// Classify checks greetings, then farewells, then the allowlist. Matching is
// plain substring containment, so "oi" also fires inside "noite".
func (g *Gate) Classify(normalized string) domain.Classification {
	if term, ok := firstMatch(g.greetings, normalized); ok {
		return domain.Classification{Kind: domain.TopicGreeting, Term: term.Match, Reply: term.Reply}
	}

	if term, ok := firstMatch(g.farewells, normalized); ok {
		return domain.Classification{Kind: domain.TopicFarewell, Term: term.Match, Reply: term.Reply}
	}

	for _, allowed := range g.allowlist {
		if strings.Contains(normalized, allowed) {
			return domain.Classification{Kind: domain.TopicInScope, Term: allowed}
		}
	}

	return domain.Classification{Kind: domain.TopicOffTopic, Reply: g.refusal}
}

func firstMatch(terms []Term, text string) (Term, bool) {
	for _, term := range terms {
		if strings.Contains(text, term.Match) {
			return term, true
		}
	}
	return Term{}, false
}
