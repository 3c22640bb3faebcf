// Package recognizer sends encoded audio to a cloud speech-to-text service
// and distinguishes "nothing understood" from service failures.
package recognizer

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the service processed the audio but could
// not understand any speech in it. Callers treat it as a retry prompt,
// never as a failure.
var ErrNoSpeech = errors.New("no speech understood")

type Result struct {
	Text       string
	Confidence float64
}

type Recognizer interface {
	Name() string
	SetLanguage(lang string)
	GetLanguage() string
	// Recognize submits a complete FLAC utterance. Any error other than
	// ErrNoSpeech is a service or transport failure.
	Recognize(ctx context.Context, flacData []byte) (Result, error)
}
