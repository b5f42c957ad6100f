// Package engine selects canned replies for a persona via keyword
// matching. There is no language model behind it; replies come from
// static per-persona response tables.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ariahq/chatterbox/backend/internal/model/chat"
	"github.com/ariahq/chatterbox/backend/internal/model/persona"
)

const (
	defaultMinDelay = 1 * time.Second
	defaultMaxDelay = 3 * time.Second
)

// SleepFunc pauses for the given duration or returns early with the
// context error. Injected so tests can skip the thinking delay.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Engine produces replies for a single persona. It tracks conversation
// history as a hook for future context-aware selection; the current
// algorithm is stateless given persona and utterance.
//
// Engines are safe for concurrent use: persona, history, and the rand
// source sit behind one mutex, which is never held across the thinking
// delay.
type Engine struct {
	minDelay time.Duration
	maxDelay time.Duration
	sleep    SleepFunc

	mu      sync.Mutex
	persona persona.Persona
	history []chat.Message
	rng     *rand.Rand
}

// Option customises an Engine.
type Option func(*Engine)

// WithRandSource injects the randomness used for candidate selection,
// making responses deterministic under a seeded source.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.rng = rand.New(src) }
}

// WithDelayRange sets the bounds of the artificial thinking delay.
// The delay is drawn uniformly from [min, max).
func WithDelayRange(min, max time.Duration) Option {
	return func(e *Engine) {
		e.minDelay = min
		e.maxDelay = max
	}
}

// WithSleep replaces the sleep implementation.
func WithSleep(fn SleepFunc) Option {
	return func(e *Engine) { e.sleep = fn }
}

// New constructs an engine bound to the given persona.
func New(p persona.Persona, opts ...Option) *Engine {
	e := &Engine{
		persona:  p,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		minDelay: defaultMinDelay,
		maxDelay: defaultMaxDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetPersona switches the active persona for subsequent replies.
func (e *Engine) SetPersona(p persona.Persona) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persona = p
}

// Persona returns the active persona.
func (e *Engine) Persona() persona.Persona {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persona
}

// UpdateHistory replaces the tracked conversation history.
func (e *Engine) UpdateHistory(messages []chat.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history[:0:0], messages...)
}

// History returns a copy of the tracked history.
func (e *Engine) History() []chat.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]chat.Message(nil), e.history...)
}

// GenerateResponse returns a reply for the utterance after an artificial
// thinking delay. It is total over string input: any utterance, including
// the empty string, yields a non-empty reply. The only error is context
// cancellation during the delay.
func (e *Engine) GenerateResponse(ctx context.Context, utterance string) (string, error) {
	if err := e.sleep(ctx, e.thinkingDelay()); err != nil {
		return "", err
	}

	lower := strings.ToLower(utterance)

	e.mu.Lock()
	defer e.mu.Unlock()
	candidates := resolveCandidates(responseTable(e.persona.ID), lower)
	return candidates[e.rng.Intn(len(candidates))], nil
}

func (e *Engine) thinkingDelay() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	delay := e.minDelay
	if span := e.maxDelay - e.minDelay; span > 0 {
		delay += time.Duration(e.rng.Int63n(int64(span)))
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
