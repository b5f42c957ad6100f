package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ariahq/chatterbox/backend/internal/engine"
	"github.com/ariahq/chatterbox/backend/internal/model/chat"
	"github.com/ariahq/chatterbox/backend/internal/model/persona"
	"github.com/ariahq/chatterbox/backend/internal/storage"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrContentRequired = errors.New("message content is required")
)

// apologyReply is the catch-all shown when reply generation fails
// unexpectedly. Failures never escape to the user as errors.
const apologyReply = "I'm sorry, something went wrong on my end. Could you try saying that again?"

// Service owns the live conversation state: sessions, their transcripts,
// and one response engine per session. Snapshots persist through the
// storage layer on a best-effort basis.
type Service struct {
	personas   persona.Store
	store      *storage.Store
	log        zerolog.Logger
	engineOpts []engine.Option

	mu       sync.RWMutex
	sessions map[string]chat.Session
	engines  map[string]*engine.Engine
}

// NewService bootstraps the in-memory conversation service. Engine
// options propagate to every per-session engine, which is how tests and
// configuration control the thinking delay and randomness.
func NewService(personas persona.Store, store *storage.Store, logger zerolog.Logger, engineOpts ...engine.Option) *Service {
	return &Service{
		personas:   personas,
		store:      store,
		log:        logger,
		engineOpts: engineOpts,
		sessions:   make(map[string]chat.Session),
		engines:    make(map[string]*engine.Engine),
	}
}

// CreateSession provisions a conversation bound to a persona. An empty or
// unknown persona id falls back to the default persona rather than
// failing. The transcript opens with the persona's greeting.
func (s *Service) CreateSession(ctx context.Context, personaID string) (chat.Session, error) {
	p, ok := s.personas.FindByID(personaID)
	if !ok {
		p = s.personas.Default()
	}

	now := time.Now().UTC()
	greeting := chat.Message{
		ID:        uuid.NewString(),
		Content:   p.Greeting,
		Sender:    chat.SenderAI,
		Timestamp: now,
		Persona:   &p,
	}
	session := chat.Session{
		ID:         uuid.NewString(),
		Messages:   []chat.Message{greeting},
		Persona:    p,
		CreatedAt:  now,
		LastActive: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.engines[session.ID] = engine.New(p, s.engineOpts...)
	s.mu.Unlock()

	s.store.SaveSession(ctx, session)
	s.store.SaveCurrentPersona(ctx, p)

	return session, nil
}

// Respond appends the user message, generates the persona's reply, and
// returns the reply message. Unexpected generation failures degrade to a
// fixed apology; only context cancellation propagates as an error.
func (s *Service) Respond(ctx context.Context, sessionID, content string) (chat.Message, error) {
	if content == "" {
		return chat.Message{}, ErrContentRequired
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return chat.Message{}, ErrSessionNotFound
	}

	userMessage := chat.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    chat.SenderUser,
		Timestamp: time.Now().UTC(),
	}
	session.Messages = append(session.Messages, userMessage)
	session.LastActive = userMessage.Timestamp
	s.sessions[sessionID] = session

	eng := s.engines[sessionID]
	eng.UpdateHistory(session.Messages)
	s.mu.Unlock()

	// The engine sleeps its thinking delay; never hold the lock here.
	replyText, err := eng.GenerateResponse(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return chat.Message{}, err
		}
		s.log.Error().Err(err).Str("session", sessionID).Msg("response generation failed")
		replyText = apologyReply
	}

	s.mu.Lock()
	session, ok = s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return chat.Message{}, ErrSessionNotFound
	}
	p := session.Persona
	reply := chat.Message{
		ID:        uuid.NewString(),
		Content:   replyText,
		Sender:    chat.SenderAI,
		Timestamp: time.Now().UTC(),
		Persona:   &p,
	}
	session.Messages = append(session.Messages, reply)
	session.LastActive = reply.Timestamp
	s.sessions[sessionID] = session
	snapshot := session
	s.mu.Unlock()

	s.store.SaveMessages(ctx, snapshot.Messages)
	s.store.SaveSession(ctx, snapshot)

	return reply, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns the stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(session.Messages))
	copy(copied, session.Messages)
	return copied, nil
}

// Reset drops every live session and clears the persisted state.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.sessions = make(map[string]chat.Session)
	s.engines = make(map[string]*engine.Engine)
	s.mu.Unlock()

	s.store.ClearAll(ctx)
}
