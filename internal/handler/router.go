package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	chathandler "github.com/ariahq/chatterbox/backend/internal/handler/chat"
	personahandler "github.com/ariahq/chatterbox/backend/internal/handler/persona"
	storagehandler "github.com/ariahq/chatterbox/backend/internal/handler/storage"
	voicehandler "github.com/ariahq/chatterbox/backend/internal/handler/voice"
	middlewarePkg "github.com/ariahq/chatterbox/backend/internal/middleware"
	personaModel "github.com/ariahq/chatterbox/backend/internal/model/persona"
	chatService "github.com/ariahq/chatterbox/backend/internal/service/chat"
	"github.com/ariahq/chatterbox/backend/internal/storage"
	"github.com/ariahq/chatterbox/backend/internal/voice"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, chatSvc *chatService.Service, store *storage.Store, adapter *voice.Adapter, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaHandler := personahandler.New(personas)
	chatHandler := chathandler.New(chatSvc, personas)
	storageHandler := storagehandler.New(store, chatSvc)

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		storageHandler.RegisterRoutes(api)

		if adapter != nil {
			voiceHandler := voicehandler.New(adapter, logger)
			voiceHandler.RegisterRoutes(api)
		}
	})

	return r
}
