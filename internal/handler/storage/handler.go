package storage

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatservice "github.com/ariahq/chatterbox/backend/internal/service/chat"
	"github.com/ariahq/chatterbox/backend/internal/storage"
	"github.com/ariahq/chatterbox/backend/pkg/utils"
)

// maxImportSize bounds the accepted import document.
const maxImportSize = 4 << 20

// Handler exposes the persisted conversation state: export, import, and
// a full clear.
type Handler struct {
	store   *storage.Store
	chatSvc *chatservice.Service
}

// New creates the storage handler.
func New(store *storage.Store, chatSvc *chatservice.Service) *Handler {
	return &Handler{store: store, chatSvc: chatSvc}
}

// RegisterRoutes mounts the storage routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/storage/export", h.handleExport)
	r.Post("/storage/import", h.handleImport)
	r.Delete("/storage", h.handleClear)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	doc := h.store.Export(r.Context())

	filename := storage.ExportFilename(time.Now().UTC())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	imported := h.store.Import(r.Context(), string(body))
	status := http.StatusOK
	if !imported {
		status = http.StatusBadRequest
	}
	utils.RespondJSON(w, status, map[string]bool{"imported": imported})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.chatSvc.Reset(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
