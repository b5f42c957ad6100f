package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	personamodel "github.com/ariahq/chatterbox/backend/internal/model/persona"
)

func setupRouter() *chi.Mux {
	handler := New(personamodel.NewMemoryStore(personamodel.Seed()))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestListPersonas(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var personas []personamodel.Persona
	if err := json.Unmarshal(resp.Body.Bytes(), &personas); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if len(personas) != len(personamodel.Seed()) {
		t.Fatalf("expected %d personas, got %d", len(personamodel.Seed()), len(personas))
	}
}

func TestGetPersonaByID(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas/nova", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var p personamodel.Persona
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if p.ID != "nova" {
		t.Fatalf("expected nova, got %s", p.ID)
	}
}

func TestGetPersonaNotFound(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas/non-existent", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
