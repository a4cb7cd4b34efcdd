package domain

type TopicKind string

const (
	TopicGreeting TopicKind = "greeting"
	TopicFarewell TopicKind = "farewell"
	TopicOffTopic TopicKind = "off_topic"
	TopicInScope  TopicKind = "in_scope"
)

func (k TopicKind) String() string {
	return string(k)
}

// Classification is the gate's verdict. Reply is empty only for in-scope
// questions; Term holds the table entry that matched, if any.
type Classification struct {
	Kind  TopicKind
	Term  string
	Reply string
}

func (c Classification) IsTerminal() bool {
	return c.Kind != TopicInScope
}
