// Package storage persists conversation state to a keyed string backend.
// Persistence is best-effort: save failures are logged, never returned,
// and loads degrade to empty/absent results. The store is a cache of UI
// state, not a system of record.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ariahq/chatterbox/backend/internal/model/chat"
	"github.com/ariahq/chatterbox/backend/internal/model/persona"
)

const (
	keyMessages         = "chatbot_messages"
	keySessions         = "chatbot_sessions"
	keyCurrentCharacter = "chatbot_current_character"
	keySettings         = "chatbot_settings"
)

// maxSessions caps the retained session list. Eviction is FIFO by
// insertion order; an upserted session keeps its slot.
const maxSessions = 10

// Config tunes the store.
type Config struct {
	// Prefix namespaces every key, e.g. per deployment. Empty means the
	// bare key names.
	Prefix string
}

// Store serialises and restores conversation snapshots. It holds no live
// references; callers own the in-memory state.
type Store struct {
	backend Backend
	prefix  string
	log     zerolog.Logger
}

// New builds a Store on top of the given backend.
func New(backend Backend, logger zerolog.Logger, config ...Config) *Store {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Store{backend: backend, prefix: cfg.Prefix, log: logger}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// SaveMessages overwrites the persisted message sequence. Fire-and-forget.
func (s *Store) SaveMessages(ctx context.Context, messages []chat.Message) {
	if err := s.saveJSON(ctx, keyMessages, messages); err != nil {
		s.log.Error().Err(err).Msg("failed to save messages")
	}
}

// LoadMessages restores the persisted message sequence. Timestamps revive
// from their ISO-8601 form via the typed unmarshal. Returns an empty
// slice on absence or any failure.
func (s *Store) LoadMessages(ctx context.Context) []chat.Message {
	var messages []chat.Message
	if err := s.loadJSON(ctx, keyMessages, &messages); err != nil {
		s.logLoadFailure("messages", err)
		return []chat.Message{}
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	return messages
}

// SaveCurrentPersona persists the active character. Fire-and-forget.
func (s *Store) SaveCurrentPersona(ctx context.Context, p persona.Persona) {
	if err := s.saveJSON(ctx, keyCurrentCharacter, p); err != nil {
		s.log.Error().Err(err).Msg("failed to save current persona")
	}
}

// LoadCurrentPersona restores the active character; the second return is
// false when nothing usable is stored.
func (s *Store) LoadCurrentPersona(ctx context.Context) (persona.Persona, bool) {
	var p persona.Persona
	if err := s.loadJSON(ctx, keyCurrentCharacter, &p); err != nil {
		s.logLoadFailure("current persona", err)
		return persona.Persona{}, false
	}
	return p, true
}

// SaveSession upserts the session into the retained list, keeping only
// the most recent maxSessions by insertion order. Fire-and-forget.
func (s *Store) SaveSession(ctx context.Context, session chat.Session) {
	sessions := s.LoadSessions(ctx)

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}
	if len(sessions) > maxSessions {
		sessions = sessions[len(sessions)-maxSessions:]
	}

	if err := s.saveJSON(ctx, keySessions, sessions); err != nil {
		s.log.Error().Err(err).Str("session", session.ID).Msg("failed to save session")
	}
}

// LoadSessions restores the retained session list, reviving session dates
// and every nested message timestamp.
func (s *Store) LoadSessions(ctx context.Context) []chat.Session {
	var sessions []chat.Session
	if err := s.loadJSON(ctx, keySessions, &sessions); err != nil {
		s.logLoadFailure("sessions", err)
		return []chat.Session{}
	}
	if sessions == nil {
		sessions = []chat.Session{}
	}
	return sessions
}

// SaveSettings persists the preference bag. Fire-and-forget.
func (s *Store) SaveSettings(ctx context.Context, settings chat.Settings) {
	if err := s.saveJSON(ctx, keySettings, settings); err != nil {
		s.log.Error().Err(err).Msg("failed to save settings")
	}
}

// LoadSettings restores the preference bag, empty on failure.
func (s *Store) LoadSettings(ctx context.Context) chat.Settings {
	var settings chat.Settings
	if err := s.loadJSON(ctx, keySettings, &settings); err != nil {
		s.logLoadFailure("settings", err)
		return chat.Settings{}
	}
	if settings == nil {
		settings = chat.Settings{}
	}
	return settings
}

// exportDocument bundles the persisted state for download.
type exportDocument struct {
	Messages         []chat.Message   `json:"messages"`
	Sessions         []chat.Session   `json:"sessions"`
	CurrentCharacter *persona.Persona `json:"currentCharacter"`
	Settings         chat.Settings    `json:"settings"`
	ExportedAt       time.Time        `json:"exportedAt"`
}

// Export produces a pretty-printed JSON document with all persisted
// state and an export timestamp.
func (s *Store) Export(ctx context.Context) string {
	doc := exportDocument{
		Messages:   s.LoadMessages(ctx),
		Sessions:   s.LoadSessions(ctx),
		Settings:   s.LoadSettings(ctx),
		ExportedAt: time.Now().UTC(),
	}
	if p, ok := s.LoadCurrentPersona(ctx); ok {
		doc.CurrentCharacter = &p
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal export document")
		return "{}"
	}
	return string(data)
}

// ExportFilename returns the download name for an export taken at the
// given instant, e.g. chat-export-2026-08-31.json.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("chat-export-%s.json", now.Format("2006-01-02"))
}

// Import restores any top-level fields present in the document through
// the corresponding save operations. Partial documents are fine; missing
// fields simply are not restored. Malformed JSON returns false and
// performs no writes.
func (s *Store) Import(ctx context.Context, doc string) bool {
	var parsed struct {
		Messages         []chat.Message   `json:"messages"`
		CurrentCharacter *persona.Persona `json:"currentCharacter"`
		Settings         chat.Settings    `json:"settings"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		s.log.Error().Err(err).Msg("failed to parse import document")
		return false
	}

	if parsed.Messages != nil {
		s.SaveMessages(ctx, parsed.Messages)
	}
	if parsed.CurrentCharacter != nil {
		s.SaveCurrentPersona(ctx, *parsed.CurrentCharacter)
	}
	if parsed.Settings != nil {
		s.SaveSettings(ctx, parsed.Settings)
	}
	return true
}

// ClearAll removes every persisted key unconditionally.
func (s *Store) ClearAll(ctx context.Context) {
	keys := []string{
		s.key(keyMessages),
		s.key(keySessions),
		s.key(keyCurrentCharacter),
		s.key(keySettings),
	}
	if err := s.backend.Delete(ctx, keys...); err != nil {
		s.log.Error().Err(err).Msg("failed to clear storage")
	}
}

// saveJSON and loadJSON are the internal error lane; the public surface
// swallows their failures per the no-throw contract.

func (s *Store) saveJSON(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.backend.Set(ctx, s.key(name), string(data))
}

func (s *Store) loadJSON(ctx context.Context, name string, target any) error {
	raw, err := s.backend.Get(ctx, s.key(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}

func (s *Store) logLoadFailure(what string, err error) {
	// Absence is the normal first-run state, not worth an error line.
	if errors.Is(err, ErrNotFound) {
		return
	}
	s.log.Error().Err(err).Msgf("failed to load %s", what)
}
