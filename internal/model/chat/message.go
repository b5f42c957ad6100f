package chat

import (
	"time"

	"github.com/ariahq/chatterbox/backend/internal/model/persona"
)

// Sender identifies which side of the conversation produced a message.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is a single conversation turn. Messages are immutable once
// created; Persona is set only when Sender is SenderAI.
type Message struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	Sender    string           `json:"sender"`
	Timestamp time.Time        `json:"timestamp"`
	Persona   *persona.Persona `json:"persona,omitempty"`
}
