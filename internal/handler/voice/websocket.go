package voice

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ariahq/chatterbox/backend/internal/voice"
)

// Handler drives the voice adapter over a websocket. Each connection gets
// the shared adapter; the adapter's own guards enforce the one-listen,
// last-speaker-wins rules.
type Handler struct {
	adapter  *voice.Adapter
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// New creates the voice websocket handler.
func New(adapter *voice.Adapter, logger zerolog.Logger) *Handler {
	return &Handler{
		adapter: adapter,
		log:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voice/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type    string             `json:"type"`
	Text    string             `json:"text,omitempty"`
	Options voice.SpeakOptions `json:"options,omitempty"`
}

type outboundMessage struct {
	Type                 string        `json:"type"`
	Text                 string        `json:"text,omitempty"`
	Error                string        `json:"error,omitempty"`
	Voices               []voice.Voice `json:"voices,omitempty"`
	SynthesisSupported   *bool         `json:"synthesisSupported,omitempty"`
	RecognitionSupported *bool         `json:"recognitionSupported,omitempty"`
}

// conn serialises writes; listen/speak results arrive from goroutines.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(msg outboundMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &conn{ws: ws}

	synthSupported := h.adapter.SynthesisSupported()
	recSupported := h.adapter.RecognitionSupported()
	if err := c.writeJSON(outboundMessage{
		Type:                 "state",
		SynthesisSupported:   &synthSupported,
		RecognitionSupported: &recSupported,
	}); err != nil {
		return
	}

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		switch msg.Type {
		case "listen":
			go h.runListen(ctx, c)
		case "stop_listening":
			h.adapter.StopListening()
		case "speak":
			go h.runSpeak(ctx, c, msg.Text, msg.Options)
		case "stop_speaking":
			h.adapter.StopSpeaking()
		case "voices":
			_ = c.writeJSON(outboundMessage{Type: "voices", Voices: h.adapter.Voices()})
		default:
			_ = c.writeJSON(outboundMessage{Type: "error", Error: "unknown message type"})
		}
	}
}

func (h *Handler) runListen(ctx context.Context, c *conn) {
	transcript, err := h.adapter.Listen(ctx)
	if err != nil {
		// A stop requested by the client settles the session silently.
		if errors.Is(err, voice.ErrListeningStopped) {
			return
		}
		h.log.Error().Err(err).Msg("recognition failed")
		_ = c.writeJSON(outboundMessage{Type: "error", Error: err.Error()})
		return
	}
	_ = c.writeJSON(outboundMessage{Type: "transcript", Text: transcript})
}

func (h *Handler) runSpeak(ctx context.Context, c *conn, text string, opts voice.SpeakOptions) {
	if err := h.adapter.Speak(ctx, text, opts); err != nil {
		// Interruption by a newer utterance or an explicit stop is expected.
		if errors.Is(err, voice.ErrSpeechInterrupted) {
			return
		}
		h.log.Error().Err(err).Msg("synthesis failed")
		_ = c.writeJSON(outboundMessage{Type: "error", Error: err.Error()})
		return
	}
	_ = c.writeJSON(outboundMessage{Type: "spoken", Text: text})
}
