package chat

import (
	"time"

	"github.com/ariahq/chatterbox/backend/internal/model/persona"
)

// Session is the persisted aggregate of one conversation: its messages in
// chronological order plus the persona active at the time.
type Session struct {
	ID         string          `json:"id"`
	Messages   []Message       `json:"messages"`
	Persona    persona.Persona `json:"persona"`
	CreatedAt  time.Time       `json:"createdAt"`
	LastActive time.Time       `json:"lastActive"`
}

// Settings is the free-form preference bag (voice flags, rate/pitch/volume,
// theme). Opaque to everything but the voice adapter and theming.
type Settings map[string]any
