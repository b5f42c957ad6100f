package voice

import "context"

// Voice describes one synthesis voice offered by a platform.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// SpeakOptions carry per-utterance synthesis parameters. Zero values mean
// the platform default.
type SpeakOptions struct {
	Voice  string  `json:"voice,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
	Pitch  float64 `json:"pitch,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// Synthesizer is the text-to-speech capability. Speak blocks until the
// utterance completes, fails, or ctx is cancelled.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts SpeakOptions) error
	Voices() []Voice
}

// Recognizer is the speech-to-text capability. Listen blocks until one
// transcript is produced, the session fails, or ctx is cancelled. Stop
// aborts the platform session; the in-flight Listen then unblocks.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
	Stop()
}
