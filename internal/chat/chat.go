package chat

import "sync"

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in a conversation.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Log is the append-only conversation for one session. Messages are never
// edited, reordered or removed.
type Log struct {
	mu       sync.Mutex
	messages []Message
}

func (l *Log) append(messages ...Message) {
	l.messages = append(l.messages, messages...)
}

// Messages returns a copy of the conversation in append order.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Store keeps one Log per session id.
type Store struct {
	mu   sync.Mutex
	logs map[string]*Log
}

func NewStore() *Store {
	return &Store{logs: make(map[string]*Log)}
}

// Log returns the conversation for the session, creating it on first use.
func (s *Store) Log(sessionID string) *Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.logs[sessionID]
	if !ok {
		log = &Log{}
		s.logs[sessionID] = log
	}
	return log
}

// Messages returns the conversation for the session without creating one.
func (s *Store) Messages(sessionID string) []Message {
	s.mu.Lock()
	log, ok := s.logs[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return log.Messages()
}
