package domain

type Outcome string

const (
	OutcomeEmpty        Outcome = "empty"
	OutcomeGreeting     Outcome = "greeting"
	OutcomeFarewell     Outcome = "farewell"
	OutcomeOffTopic     Outcome = "off_topic"
	OutcomeAnswered     Outcome = "answered"
	OutcomeModelError   Outcome = "model_error"
	OutcomeInsufficient Outcome = "insufficient"
)

func (o Outcome) String() string {
	return string(o)
}

// OutcomeForTopic maps a terminal gate verdict to its outcome label.
func OutcomeForTopic(kind TopicKind) Outcome {
	switch kind {
	case TopicGreeting:
		return OutcomeGreeting
	case TopicFarewell:
		return OutcomeFarewell
	default:
		return OutcomeOffTopic
	}
}

// Answer is the final text for one question plus how it was produced.
type Answer struct {
	Text    string
	Outcome Outcome
}
