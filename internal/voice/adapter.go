// Package voice wraps the platform speech capabilities behind a small
// state machine: at most one recognition session in flight, and
// last-writer-wins speech synthesis. Capabilities are injected; a nil
// capability means the feature is unsupported and callers should check
// the support predicates before attempting the operation.
package voice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrSynthesisUnsupported   = errors.New("voice: speech synthesis not supported")
	ErrRecognitionUnsupported = errors.New("voice: speech recognition not supported")
	ErrAlreadyListening       = errors.New("voice: already listening")
	ErrListeningStopped       = errors.New("voice: listening stopped")
	ErrSpeechInterrupted      = errors.New("voice: speech interrupted")
)

// Config bounds the in-flight platform operations. Zero disables the
// bound, matching platforms that enforce none of their own.
type Config struct {
	ListenTimeout time.Duration
	SpeakTimeout  time.Duration
}

// Adapter mediates access to one Synthesizer and one Recognizer.
type Adapter struct {
	synth Synthesizer
	rec   Recognizer
	cfg   Config
	log   zerolog.Logger

	mu           sync.Mutex
	listening    bool
	listenCancel context.CancelFunc
	speakGen     uint64
	speakCancel  context.CancelFunc
}

// New builds an adapter over the given capabilities; either may be nil.
func New(synth Synthesizer, rec Recognizer, logger zerolog.Logger, config ...Config) *Adapter {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Adapter{synth: synth, rec: rec, cfg: cfg, log: logger}
}

// SynthesisSupported reports whether Speak can work at all.
func (a *Adapter) SynthesisSupported() bool { return a.synth != nil }

// RecognitionSupported reports whether Listen can work at all.
func (a *Adapter) RecognitionSupported() bool { return a.rec != nil }

// IsListening reports whether a recognition session is in flight.
func (a *Adapter) IsListening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Voices lists the synthesis voices, empty when unsupported.
func (a *Adapter) Voices() []Voice {
	if a.synth == nil {
		return nil
	}
	return a.synth.Voices()
}

// Listen runs one recognition session and returns its transcript. A
// second Listen while one is in flight fails immediately with
// ErrAlreadyListening; sessions are never queued. A session aborted by
// StopListening unblocks with ErrListeningStopped — callers who initiated
// the stop discard it.
func (a *Adapter) Listen(ctx context.Context) (string, error) {
	if a.rec == nil {
		return "", ErrRecognitionUnsupported
	}

	a.mu.Lock()
	if a.listening {
		a.mu.Unlock()
		return "", ErrAlreadyListening
	}
	listenCtx, cancel := a.boundContext(ctx, a.cfg.ListenTimeout)
	a.listening = true
	a.listenCancel = cancel
	a.mu.Unlock()

	transcript, err := a.rec.Listen(listenCtx)

	a.mu.Lock()
	a.listening = false
	a.listenCancel = nil
	a.mu.Unlock()
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return "", ErrListeningStopped
		}
		return "", err
	}
	return transcript, nil
}

// StopListening aborts any in-flight recognition session. The pending
// Listen call settles with ErrListeningStopped rather than a transcript.
func (a *Adapter) StopListening() {
	a.mu.Lock()
	cancel := a.listenCancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
		a.rec.Stop()
		a.log.Debug().Msg("recognition session aborted")
	}
}

// Speak synthesises the text, cancelling any utterance still in flight
// first. The interrupted call settles with ErrSpeechInterrupted. Spoken
// output is never queued.
func (a *Adapter) Speak(ctx context.Context, text string, opts SpeakOptions) error {
	if a.synth == nil {
		return ErrSynthesisUnsupported
	}

	a.mu.Lock()
	if a.speakCancel != nil {
		a.speakCancel()
	}
	speakCtx, cancel := a.boundContext(ctx, a.cfg.SpeakTimeout)
	a.speakGen++
	gen := a.speakGen
	a.speakCancel = cancel
	a.mu.Unlock()

	err := a.synth.Speak(speakCtx, text, opts)

	a.mu.Lock()
	if a.speakGen == gen {
		a.speakCancel = nil
	}
	a.mu.Unlock()
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return ErrSpeechInterrupted
		}
		return err
	}
	return nil
}

// StopSpeaking aborts the in-flight utterance, if any.
func (a *Adapter) StopSpeaking() {
	a.mu.Lock()
	cancel := a.speakCancel
	a.speakCancel = nil
	a.mu.Unlock()
	if cancel != nil {
		cancel()
		a.log.Debug().Msg("utterance cancelled")
	}
}

func (a *Adapter) boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
