package persona

// Store exposes persona retrieval for HTTP handlers and services.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
	Default() Persona
}

// MemoryStore implements Store with an in-memory slice. The registry is
// fixed at construction time; there are no mutation operations.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
// The slice must be non-empty; the first entry becomes the default.
func NewMemoryStore(items []Persona) *MemoryStore {
	if len(items) == 0 {
		panic("persona: registry must not be empty")
	}
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the predefined persona list.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier. Absence is not an error;
// callers should fall back to Default.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Default returns the first registry entry.
func (s *MemoryStore) Default() Persona {
	return s.items[0]
}
