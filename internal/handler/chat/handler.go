package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariahq/chatterbox/backend/internal/model/persona"
	chatservice "github.com/ariahq/chatterbox/backend/internal/service/chat"
	"github.com/ariahq/chatterbox/backend/pkg/utils"
)

// Handler serves session and message endpoints.
type Handler struct {
	chatSvc      *chatservice.Service
	personaStore persona.Store
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service, personaStore persona.Store) *Handler {
	return &Handler{
		chatSvc:      chatSvc,
		personaStore: personaStore,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Post("/messages", h.handleSendMessage)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Unknown or empty persona ids fall back to the default persona.
	session, err := h.chatSvc.CreateSession(r.Context(), payload.PersonaID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Content   string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chatSvc.Respond(r.Context(), payload.SessionID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, chatservice.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, chatservice.ErrContentRequired):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}
