package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeRecognizer blocks until its context ends when transcript is empty,
// otherwise returns the transcript immediately.
type fakeRecognizer struct {
	transcript string
	err        error
}

func (f *fakeRecognizer) Listen(ctx context.Context) (string, error) {
	if f.transcript == "" && f.err == nil {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.transcript, f.err
}

func (f *fakeRecognizer) Stop() {}

// fakeSynthesizer records utterances; blocking ones wait for their
// context to end.
type fakeSynthesizer struct {
	mu       sync.Mutex
	spoken   []string
	blocking bool
}

func (f *fakeSynthesizer) Speak(ctx context.Context, text string, _ SpeakOptions) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	f.mu.Unlock()
	if f.blocking {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeSynthesizer) Voices() []Voice {
	return []Voice{{ID: "v1", Name: "Test Voice", Language: "en-US"}}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestListenReturnsTranscript(t *testing.T) {
	a := New(nil, &fakeRecognizer{transcript: "hello world"}, zerolog.Nop())

	got, err := a.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen err: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("transcript %q", got)
	}
	if a.IsListening() {
		t.Fatal("listening flag not cleared")
	}
}

func TestListenUnsupported(t *testing.T) {
	a := New(nil, nil, zerolog.Nop())

	if _, err := a.Listen(context.Background()); !errors.Is(err, ErrRecognitionUnsupported) {
		t.Fatalf("expected ErrRecognitionUnsupported, got %v", err)
	}
}

func TestSecondListenRejectsImmediately(t *testing.T) {
	a := New(nil, &fakeRecognizer{}, zerolog.Nop())

	results := make(chan error, 1)
	go func() {
		_, err := a.Listen(context.Background())
		results <- err
	}()

	waitFor(t, a.IsListening)

	if _, err := a.Listen(context.Background()); !errors.Is(err, ErrAlreadyListening) {
		t.Fatalf("expected ErrAlreadyListening, got %v", err)
	}

	a.StopListening()
	if err := <-results; !errors.Is(err, ErrListeningStopped) {
		t.Fatalf("expected ErrListeningStopped, got %v", err)
	}
	if a.IsListening() {
		t.Fatal("listening flag not cleared after stop")
	}
}

func TestListenTimeout(t *testing.T) {
	a := New(nil, &fakeRecognizer{}, zerolog.Nop(), Config{ListenTimeout: 20 * time.Millisecond})

	if _, err := a.Listen(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestListenPropagatesRecognitionError(t *testing.T) {
	recErr := errors.New("no-speech")
	a := New(nil, &fakeRecognizer{err: recErr}, zerolog.Nop())

	if _, err := a.Listen(context.Background()); !errors.Is(err, recErr) {
		t.Fatalf("expected recognition error, got %v", err)
	}
}

func TestSpeakUnsupported(t *testing.T) {
	a := New(nil, nil, zerolog.Nop())

	err := a.Speak(context.Background(), "hi", SpeakOptions{})
	if !errors.Is(err, ErrSynthesisUnsupported) {
		t.Fatalf("expected ErrSynthesisUnsupported, got %v", err)
	}
}

func TestSpeakCancelsInFlightUtterance(t *testing.T) {
	synth := &fakeSynthesizer{blocking: true}
	a := New(synth, nil, zerolog.Nop())

	first := make(chan error, 1)
	go func() {
		first <- a.Speak(context.Background(), "first", SpeakOptions{})
	}()

	waitFor(t, func() bool {
		synth.mu.Lock()
		defer synth.mu.Unlock()
		return len(synth.spoken) == 1
	})

	second := make(chan error, 1)
	go func() {
		second <- a.Speak(context.Background(), "second", SpeakOptions{})
	}()

	if err := <-first; !errors.Is(err, ErrSpeechInterrupted) {
		t.Fatalf("expected first utterance interrupted, got %v", err)
	}

	a.StopSpeaking()
	if err := <-second; !errors.Is(err, ErrSpeechInterrupted) {
		t.Fatalf("expected second utterance stopped, got %v", err)
	}
}

func TestStopSpeakingWithoutUtteranceIsNoop(t *testing.T) {
	a := New(&fakeSynthesizer{}, nil, zerolog.Nop())
	a.StopSpeaking()
}

func TestSpeakCompletes(t *testing.T) {
	synth := &fakeSynthesizer{}
	a := New(synth, nil, zerolog.Nop())

	if err := a.Speak(context.Background(), "done", SpeakOptions{Rate: 1.2}); err != nil {
		t.Fatalf("Speak err: %v", err)
	}
	if len(synth.spoken) != 1 || synth.spoken[0] != "done" {
		t.Fatalf("unexpected spoken log: %v", synth.spoken)
	}
}

func TestVoicesEmptyWhenUnsupported(t *testing.T) {
	a := New(nil, nil, zerolog.Nop())
	if voices := a.Voices(); len(voices) != 0 {
		t.Fatalf("expected no voices, got %v", voices)
	}
}

func TestSupportPredicates(t *testing.T) {
	a := New(&fakeSynthesizer{}, nil, zerolog.Nop())
	if !a.SynthesisSupported() {
		t.Fatal("synthesis should be supported")
	}
	if a.RecognitionSupported() {
		t.Fatal("recognition should be unsupported")
	}
}
