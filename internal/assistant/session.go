package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gradnet/internal/logging"
)

// Role tags a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one transcript entry.
type Turn struct {
	Role Role
	Text string
}

const welcomeText = "Hi! I'm the alumni network assistant. Ask me about " +
	"events, job postings, finding fellow alumni, or updating your profile."

// FallbackText is appended whenever an exchange fails for any reason.
// Failures are absorbed here and never surface to the rest of the app.
const FallbackText = "I'm having trouble connecting right now. Please try " +
	"again in a moment, or email the alumni office for urgent questions."

var (
	// ErrEmptyMessage rejects whitespace-only sends with no transcript change.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy rejects a send while a request is outstanding. The source
	// app never guarded this; rejection keeps the transcript ordered.
	ErrBusy = errors.New("a request is already in flight")
)

// Generator is the outbound boundary to the text-generation endpoint.
// *Client satisfies it; tests substitute failing or canned generators.
type Generator interface {
	Generate(ctx context.Context, userText string) (string, error)
}

// Session holds the conversation transcript and enforces the
// one-outstanding-request rule. Safe for use from the TUI update loop
// plus the single request goroutine.
type Session struct {
	mu       sync.Mutex
	client   Generator
	turns    []Turn
	awaiting bool
}

// NewSession returns a transcript seeded with the welcome entry.
func NewSession(client Generator) *Session {
	return &Session{
		client: client,
		turns:  []Turn{{Role: RoleAssistant, Text: welcomeText}},
	}
}

// Transcript returns a copy of the ordered transcript.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Send runs one conversation turn: append the user entry, issue exactly
// one request, append either the assistant reply or the fixed fallback.
// The awaiting flag is cleared on every path. Blocks until the exchange
// resolves; the TUI calls it from a tea.Cmd goroutine.
func (s *Session) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		logging.AssistantDebug("send rejected: request in flight")
		return ErrBusy
	}
	s.awaiting = true
	s.turns = append(s.turns, Turn{Role: RoleUser, Text: trimmed})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.awaiting = false
		s.mu.Unlock()
	}()

	reply, err := s.client.Generate(ctx, trimmed)
	if err != nil {
		// Integration failures degrade to the fallback entry; they are
		// never fatal to the session.
		logging.AssistantError("exchange failed, using fallback: %v", err)
		reply = FallbackText
	}

	s.mu.Lock()
	s.turns = append(s.turns, Turn{Role: RoleAssistant, Text: reply})
	s.mu.Unlock()
	return nil
}
