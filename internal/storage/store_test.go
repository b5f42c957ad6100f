package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ariahq/chatterbox/backend/internal/model/chat"
	"github.com/ariahq/chatterbox/backend/internal/model/persona"
)

func newTestStore() (*Store, *MemoryBackend) {
	backend := NewMemoryBackend()
	return New(backend, zerolog.Nop()), backend
}

func sampleMessages() []chat.Message {
	p := persona.Persona{ID: "aria", Name: "ARIA", Greeting: "hi"}
	return []chat.Message{
		{
			ID:        "m1",
			Content:   "hello",
			Sender:    chat.SenderUser,
			Timestamp: time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC),
		},
		{
			ID:        "m2",
			Content:   "Hello! It's wonderful to meet you!",
			Sender:    chat.SenderAI,
			Timestamp: time.Date(2026, 8, 30, 12, 0, 3, 0, time.UTC),
			Persona:   &p,
		},
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	want := sampleMessages()
	store.SaveMessages(ctx, want)
	got := store.LoadMessages(ctx)

	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Content != want[i].Content || got[i].Sender != want[i].Sender {
			t.Fatalf("message %d mismatch: %+v", i, got[i])
		}
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Fatalf("message %d timestamp %s, want %s", i, got[i].Timestamp, want[i].Timestamp)
		}
	}
	if got[1].Persona == nil || got[1].Persona.ID != "aria" {
		t.Fatalf("AI message lost its persona: %+v", got[1])
	}
}

func TestLoadMessagesEmptyBaseline(t *testing.T) {
	store, _ := newTestStore()

	got := store.LoadMessages(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestLoadMessagesMalformedPayload(t *testing.T) {
	store, backend := newTestStore()
	ctx := context.Background()

	_ = backend.Set(ctx, keyMessages, "{definitely not json")

	if got := store.LoadMessages(ctx); len(got) != 0 {
		t.Fatalf("expected empty result for malformed payload, got %d messages", len(got))
	}
}

func TestCurrentPersonaRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	want := persona.Persona{ID: "nova", Name: "NOVA", Greeting: "Greetings!"}
	store.SaveCurrentPersona(ctx, want)

	got, ok := store.LoadCurrentPersona(ctx)
	if !ok {
		t.Fatal("expected persisted persona")
	}
	if got.ID != want.ID || got.Greeting != want.Greeting {
		t.Fatalf("persona mismatch: %+v", got)
	}
}

func TestLoadCurrentPersonaAbsent(t *testing.T) {
	store, _ := newTestStore()

	if _, ok := store.LoadCurrentPersona(context.Background()); ok {
		t.Fatal("expected absence before any save")
	}
}

func TestSessionRetentionEvictsOldestFirst(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < maxSessions+1; i++ {
		store.SaveSession(ctx, chat.Session{
			ID:        fmt.Sprintf("s%02d", i),
			CreatedAt: time.Now().UTC(),
		})
	}

	sessions := store.LoadSessions(ctx)
	if len(sessions) != maxSessions {
		t.Fatalf("retained %d sessions, want %d", len(sessions), maxSessions)
	}
	if sessions[0].ID != "s01" {
		t.Fatalf("expected s00 evicted, list starts with %s", sessions[0].ID)
	}
	if sessions[len(sessions)-1].ID != "s10" {
		t.Fatalf("expected newest last, got %s", sessions[len(sessions)-1].ID)
	}
}

func TestSessionUpsertKeepsInsertionSlot(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		store.SaveSession(ctx, chat.Session{ID: id})
	}
	store.SaveSession(ctx, chat.Session{ID: "b", LastActive: time.Now().UTC()})

	sessions := store.LoadSessions(ctx)
	if len(sessions) != 3 {
		t.Fatalf("upsert must not grow the list: %d", len(sessions))
	}
	if sessions[1].ID != "b" {
		t.Fatalf("upserted session moved: %v", []string{sessions[0].ID, sessions[1].ID, sessions[2].ID})
	}
}

func TestSessionNestedTimestampsRevive(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	created := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	store.SaveSession(ctx, chat.Session{
		ID:         "s1",
		Messages:   sampleMessages(),
		Persona:    persona.Persona{ID: "aria"},
		CreatedAt:  created,
		LastActive: created.Add(5 * time.Minute),
	})

	sessions := store.LoadSessions(ctx)
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	got := sessions[0]
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt %s, want %s", got.CreatedAt, created)
	}
	if !got.Messages[0].Timestamp.Equal(sampleMessages()[0].Timestamp) {
		t.Fatalf("nested message timestamp not revived: %s", got.Messages[0].Timestamp)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.SaveMessages(ctx, sampleMessages())
	store.SaveCurrentPersona(ctx, persona.Persona{ID: "vibe", Name: "VIBE"})
	store.SaveSettings(ctx, chat.Settings{"voiceEnabled": true, "rate": 1.25})

	doc := store.Export(ctx)

	if !store.Import(ctx, doc) {
		t.Fatal("import of own export must succeed")
	}

	messages := store.LoadMessages(ctx)
	if len(messages) != 2 || messages[0].ID != "m1" {
		t.Fatalf("messages changed across export/import: %+v", messages)
	}
	if p, ok := store.LoadCurrentPersona(ctx); !ok || p.ID != "vibe" {
		t.Fatalf("persona changed across export/import: %+v", p)
	}
	settings := store.LoadSettings(ctx)
	if settings["voiceEnabled"] != true {
		t.Fatalf("settings changed across export/import: %+v", settings)
	}
}

func TestExportIsPrettyPrintedWithTimestamp(t *testing.T) {
	store, _ := newTestStore()

	doc := store.Export(context.Background())
	if !strings.Contains(doc, "\n  ") {
		t.Fatal("export should be pretty-printed")
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, field := range []string{"messages", "sessions", "currentCharacter", "settings", "exportedAt"} {
		if _, ok := parsed[field]; !ok {
			t.Fatalf("export missing field %q", field)
		}
	}
}

func TestImportMalformedWritesNothing(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if store.Import(ctx, "{broken") {
		t.Fatal("malformed document must report failure")
	}
	if got := store.LoadMessages(ctx); len(got) != 0 {
		t.Fatal("malformed import must not write")
	}
	if _, ok := store.LoadCurrentPersona(ctx); ok {
		t.Fatal("malformed import must not write")
	}
}

func TestImportPartialDocument(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.SaveMessages(ctx, sampleMessages())

	if !store.Import(ctx, `{"settings":{"theme":"dark"}}`) {
		t.Fatal("partial document must be accepted")
	}
	if got := store.LoadMessages(ctx); len(got) != 2 {
		t.Fatal("absent fields must not be touched")
	}
	if settings := store.LoadSettings(ctx); settings["theme"] != "dark" {
		t.Fatalf("present field not restored: %+v", settings)
	}
}

func TestClearAllResetsBaseline(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.SaveMessages(ctx, sampleMessages())
	store.SaveCurrentPersona(ctx, persona.Persona{ID: "aria"})
	store.SaveSession(ctx, chat.Session{ID: "s1"})
	store.SaveSettings(ctx, chat.Settings{"theme": "dark"})

	store.ClearAll(ctx)

	if got := store.LoadMessages(ctx); len(got) != 0 {
		t.Fatal("messages survived clearAll")
	}
	if got := store.LoadSessions(ctx); len(got) != 0 {
		t.Fatal("sessions survived clearAll")
	}
	if _, ok := store.LoadCurrentPersona(ctx); ok {
		t.Fatal("persona survived clearAll")
	}
	if got := store.LoadSettings(ctx); len(got) != 0 {
		t.Fatal("settings survived clearAll")
	}
}

func TestExportFilenameConvention(t *testing.T) {
	at := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	if got, want := ExportFilename(at), "chat-export-2026-08-31.json"; got != want {
		t.Fatalf("filename %q, want %q", got, want)
	}
}

func TestKeyPrefixNamespacesEntries(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	first := New(backend, zerolog.Nop(), Config{Prefix: "tab1"})
	second := New(backend, zerolog.Nop(), Config{Prefix: "tab2"})

	first.SaveMessages(ctx, sampleMessages())

	if got := second.LoadMessages(ctx); len(got) != 0 {
		t.Fatal("prefixes must isolate stores")
	}
}

func TestRedisBackendRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backend := NewRedisBackend(client)
	ctx := context.Background()

	if _, err := backend.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	store := New(backend, zerolog.Nop())
	store.SaveMessages(ctx, sampleMessages())

	got := store.LoadMessages(ctx)
	if len(got) != 2 || !got[0].Timestamp.Equal(sampleMessages()[0].Timestamp) {
		t.Fatalf("redis round-trip mismatch: %+v", got)
	}

	store.ClearAll(ctx)
	if got := store.LoadMessages(ctx); len(got) != 0 {
		t.Fatal("clearAll did not remove redis keys")
	}
}
